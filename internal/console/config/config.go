package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/proofmine/proofmine-console/pkg/env"
	"github.com/proofmine/proofmine-console/pkg/yaml"
)

const (
	// DefaultAPIURL is the marketplace backend the console talks to when
	// nothing else is configured
	DefaultAPIURL = "http://localhost:8000"

	// DefaultWalletAuthURL is the wallet provider used for sign-in
	DefaultWalletAuthURL = "https://auth.proofmine.xyz"

	defaultDataDir        = "~/.proofmine"
	defaultRequestTimeout = 30 * time.Second

	sessionFileName = "session.json"
	configFileName  = "config.yaml"
)

type Config struct {
	devMode bool

	// Marketplace backend the console talks to
	apiURL         string
	requestTimeout time.Duration

	// Wallet provider for browser sign-in
	walletAuthURL       string
	walletEnvironmentID string

	// Where the session file and default config file live
	dataDir    string
	configFile string
}

// fileConfig is the YAML shape of the console config file. Every field is
// optional; absent fields keep their defaults.
type fileConfig struct {
	APIURL         string `yaml:"api_url"`
	RequestTimeout string `yaml:"request_timeout"`
	DevMode        *bool  `yaml:"dev_mode"`
	Wallet         struct {
		AuthURL       string `yaml:"auth_url"`
		EnvironmentID string `yaml:"environment_id"`
	} `yaml:"wallet"`
}

var cfg Config

// Init loads configuration with precedence defaults < config file <
// environment. The config file path comes from CONSOLE_CONFIG_FILE or
// defaults to config.yaml inside the data directory.
func Init() error {
	return InitWithFile("")
}

// InitWithFile is Init with an explicit config file path, as passed on the
// command line. An explicit path must exist; the default path may not.
func InitWithFile(configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	dataDir, err := homedir.Expand(env.GetEnvString("CONSOLE_DATA_DIR", defaultDataDir))
	if err != nil {
		return fmt.Errorf("failed to expand data directory: %w", err)
	}

	explicitFile := configFile != ""
	if configFile == "" {
		configFile = env.GetEnvString("CONSOLE_CONFIG_FILE", "")
		explicitFile = configFile != ""
	}
	if configFile == "" {
		configFile = filepath.Join(dataDir, configFileName)
	}
	if configFile, err = homedir.Expand(configFile); err != nil {
		return fmt.Errorf("failed to expand config file path: %w", err)
	}

	cfg = Config{
		devMode:        false,
		apiURL:         DefaultAPIURL,
		requestTimeout: defaultRequestTimeout,
		walletAuthURL:  DefaultWalletAuthURL,
		dataDir:        dataDir,
		configFile:     configFile,
	}

	if err := applyFileConfig(configFile, explicitFile); err != nil {
		return err
	}

	// Environment wins over the file: each getter's fallback is the value
	// resolved so far.
	cfg.devMode = env.GetEnvBool("DEV_MODE", cfg.devMode)
	cfg.apiURL = env.GetEnvString("MARKETPLACE_API_URL", cfg.apiURL)
	cfg.requestTimeout = env.GetEnvDuration("MARKETPLACE_REQUEST_TIMEOUT", cfg.requestTimeout)
	cfg.walletAuthURL = env.GetEnvString("WALLET_AUTH_URL", cfg.walletAuthURL)
	cfg.walletEnvironmentID = env.GetEnvString("WALLET_ENVIRONMENT_ID", cfg.walletEnvironmentID)

	if err := validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyFileConfig(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.LoadYAML(path, &file); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if file.APIURL != "" {
		cfg.apiURL = file.APIURL
	}
	if file.RequestTimeout != "" {
		timeout, err := time.ParseDuration(file.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout %q in %s: %w", file.RequestTimeout, path, err)
		}
		cfg.requestTimeout = timeout
	}
	if file.DevMode != nil {
		cfg.devMode = *file.DevMode
	}
	if file.Wallet.AuthURL != "" {
		cfg.walletAuthURL = file.Wallet.AuthURL
	}
	if file.Wallet.EnvironmentID != "" {
		cfg.walletEnvironmentID = file.Wallet.EnvironmentID
	}
	return nil
}

func validateConfig() error {
	if !env.IsValidURL(cfg.apiURL) {
		return fmt.Errorf("invalid marketplace API URL: %s", cfg.apiURL)
	}
	if !env.IsValidURL(cfg.walletAuthURL) {
		return fmt.Errorf("invalid wallet auth URL: %s", cfg.walletAuthURL)
	}
	if cfg.requestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %s", cfg.requestTimeout)
	}
	if env.IsEmpty(cfg.dataDir) {
		return fmt.Errorf("data directory cannot be empty")
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetAPIURL() string {
	return cfg.apiURL
}

func GetRequestTimeout() time.Duration {
	return cfg.requestTimeout
}

func GetWalletAuthURL() string {
	return cfg.walletAuthURL
}

func GetWalletEnvironmentID() string {
	return cfg.walletEnvironmentID
}

func GetDataDir() string {
	return cfg.dataDir
}

func GetConfigFile() string {
	return cfg.configFile
}

// GetSessionFilePath is where the wallet session is persisted
func GetSessionFilePath() string {
	return filepath.Join(cfg.dataDir, sessionFileName)
}
