package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTempConfig(t *testing.T, content string) string {
	file, err := os.CreateTemp(t.TempDir(), "console_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := file.WriteString(content); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}
	return file.Name()
}

func clearEnvVars() {
	os.Unsetenv("DEV_MODE")
	os.Unsetenv("MARKETPLACE_API_URL")
	os.Unsetenv("MARKETPLACE_REQUEST_TIMEOUT")
	os.Unsetenv("WALLET_AUTH_URL")
	os.Unsetenv("WALLET_ENVIRONMENT_ID")
	os.Unsetenv("CONSOLE_DATA_DIR")
	os.Unsetenv("CONSOLE_CONFIG_FILE")
}

func TestInitDefaults(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if GetAPIURL() != DefaultAPIURL {
		t.Errorf("Expected default API URL, got %s", GetAPIURL())
	}
	if GetRequestTimeout() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", GetRequestTimeout())
	}
	if GetWalletAuthURL() != DefaultWalletAuthURL {
		t.Errorf("Expected default wallet auth URL, got %s", GetWalletAuthURL())
	}
	if IsDevMode() {
		t.Error("Expected dev mode off by default")
	}
	if GetWalletEnvironmentID() != "" {
		t.Errorf("Expected empty environment id, got %s", GetWalletEnvironmentID())
	}
}

func TestInitWithFile(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())

	tempFile := createTempConfig(t, `
api_url: "http://backend.internal:8000"
request_timeout: "45s"
dev_mode: true
wallet:
  auth_url: "https://auth.staging.proofmine.xyz"
  environment_id: "env-1234"
`)

	if err := InitWithFile(tempFile); err != nil {
		t.Fatalf("InitWithFile failed: %v", err)
	}

	if GetAPIURL() != "http://backend.internal:8000" {
		t.Errorf("Expected file API URL, got %s", GetAPIURL())
	}
	if GetRequestTimeout() != 45*time.Second {
		t.Errorf("Expected 45s timeout, got %v", GetRequestTimeout())
	}
	if !IsDevMode() {
		t.Error("Expected dev mode from file")
	}
	if GetWalletAuthURL() != "https://auth.staging.proofmine.xyz" {
		t.Errorf("Expected file wallet auth URL, got %s", GetWalletAuthURL())
	}
	if GetWalletEnvironmentID() != "env-1234" {
		t.Errorf("Expected file environment id, got %s", GetWalletEnvironmentID())
	}
	if GetConfigFile() != tempFile {
		t.Errorf("Expected config file %s, got %s", tempFile, GetConfigFile())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())
	os.Setenv("MARKETPLACE_API_URL", "http://from-env:9000")
	os.Setenv("MARKETPLACE_REQUEST_TIMEOUT", "5s")

	tempFile := createTempConfig(t, `
api_url: "http://from-file:8000"
request_timeout: "45s"
`)

	if err := InitWithFile(tempFile); err != nil {
		t.Fatalf("InitWithFile failed: %v", err)
	}

	if GetAPIURL() != "http://from-env:9000" {
		t.Errorf("Environment should win over the file, got %s", GetAPIURL())
	}
	if GetRequestTimeout() != 5*time.Second {
		t.Errorf("Environment should win over the file, got %v", GetRequestTimeout())
	}
}

func TestInitExplicitFileMissing(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())

	err := InitWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("Expected error for an explicitly named config file that does not exist")
	}
}

func TestInitDefaultFileAbsent(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init should tolerate a missing default config file: %v", err)
	}
}

func TestInitInvalidYAML(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())

	tempFile := createTempConfig(t, `
api_url: [this is
  not yaml
`)

	if err := InitWithFile(tempFile); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestInitBadTimeoutInFile(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())

	tempFile := createTempConfig(t, `
request_timeout: "soon"
`)

	if err := InitWithFile(tempFile); err == nil {
		t.Error("Expected error for unparseable request_timeout")
	}
}

func TestInitRejectsBadURL(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	os.Setenv("CONSOLE_DATA_DIR", t.TempDir())
	os.Setenv("MARKETPLACE_API_URL", "not-a-url")

	if err := Init(); err == nil {
		t.Error("Expected error for invalid marketplace API URL")
	}
}

func TestGetSessionFilePath(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()
	dataDir := t.TempDir()
	os.Setenv("CONSOLE_DATA_DIR", dataDir)

	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	expected := filepath.Join(dataDir, "session.json")
	if GetSessionFilePath() != expected {
		t.Errorf("Expected session path %s, got %s", expected, GetSessionFilePath())
	}
}
