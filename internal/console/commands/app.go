package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/config"
	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/internal/console/wallet"
	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
	"github.com/proofmine/proofmine-console/pkg/fs"
	"github.com/proofmine/proofmine-console/pkg/logging"
)

// Build information, set through ldflags at release time
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

const (
	metadataLogger  = "logger"
	metadataContext = "context"
)

// NewApp assembles the console's command surface. Configuration and the
// logger are initialized once in the Before hook; every command reads them
// through the app metadata.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "console",
		Usage:   "ProofMine marketplace console",
		Version: Version,
		Description: "Terminal client for the ProofMine proof-of-inference marketplace.\n" +
			"Builders post AI-evaluation tasks (tasks create); evaluators browse them\n" +
			"(tasks list), connect a wallet (wallet connect), submit work (tasks submit)\n" +
			"and track verification, rewards and reputation (dashboard).",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the console config file (<data dir>/config.yaml by default)",
			},
		},
		Before: setupApp,
		Commands: []*cli.Command{
			TasksCommand(),
			SubmissionsCommand(),
			AccountCommand(),
			WalletCommand(),
			DashboardCommand(),
			DoctorCommand(),
			VersionCommand(),
		},
	}
}

func setupApp(c *cli.Context) error {
	if err := config.InitWithFile(c.String("config")); err != nil {
		return err
	}

	// Tests pre-seed a logger; everything else gets the zap logger writing
	// under the data directory. Stdout stays reserved for views.
	if _, ok := c.App.Metadata[metadataLogger]; ok {
		return nil
	}

	environment := logging.Production
	if config.IsDevMode() {
		environment = logging.Development
	}
	logger, err := logging.NewZapLogger(logging.LoggerConfig{
		LogDir:      filepath.Join(config.GetDataDir(), logging.BaseLogDir),
		ProcessName: logging.ConsoleProcess,
		Environment: environment,
		UseConsole:  config.IsDevMode(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.App.Metadata[metadataLogger] = logger
	return nil
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[metadataLogger].(logging.Logger); ok {
		return logger
	}
	return logging.NewNoOpLogger()
}

// ReqContext returns the context commands run their backend calls under.
// The first call installs a SIGINT/SIGTERM handler that cancels it, so an
// interrupt drops outstanding requests instead of abandoning them.
func ReqContext(c *cli.Context) context.Context {
	if uctx, ok := c.App.Metadata[metadataContext]; ok {
		return uctx.(context.Context)
	}

	ctx, done := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 2)
	go func() {
		<-sigChan
		done()
	}()
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	c.App.Metadata[metadataContext] = ctx
	return ctx
}

func newRenderer(c *cli.Context) *views.Renderer {
	return views.NewRenderer(c.App.Writer)
}

func newMarketClient(c *cli.Context) (*marketplace.Client, error) {
	return marketplace.NewClient(loggerFrom(c), marketplace.Config{
		BaseURL:        config.GetAPIURL(),
		RequestTimeout: config.GetRequestTimeout(),
	})
}

func newWalletManager(c *cli.Context) (*wallet.Manager, error) {
	logger := loggerFrom(c)

	store, err := wallet.NewStore(&fs.OSFileSystem{}, config.GetSessionFilePath(), logger)
	if err != nil {
		return nil, err
	}

	provider, err := wallet.NewProviderClient(logger, config.GetWalletAuthURL())
	if err != nil {
		return nil, err
	}

	return wallet.NewManager(logger, wallet.Config{
		AuthURL:       config.GetWalletAuthURL(),
		EnvironmentID: config.GetWalletEnvironmentID(),
	}, store, provider)
}

// exitFailure ends the command with exit code 1 after the view has already
// rendered the failure. The empty message keeps urfave/cli from printing a
// second banner.
func exitFailure() error {
	return cli.Exit("", 1)
}
