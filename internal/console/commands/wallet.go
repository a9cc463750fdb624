package commands

import (
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/config"
	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/internal/console/wallet"
)

// WalletCommand manages the console's wallet session
func WalletCommand() *cli.Command {
	return &cli.Command{
		Name:  "wallet",
		Usage: "Connect, inspect or disconnect the wallet session",
		Subcommands: []*cli.Command{
			{
				Name:   "connect",
				Usage:  "Connect a wallet through the provider's browser page",
				Action: walletConnect,
			},
			{
				Name:   "status",
				Usage:  "Show the current wallet session",
				Action: walletStatus,
			},
			{
				Name:   "disconnect",
				Usage:  "Forget the wallet session on this machine",
				Action: walletDisconnect,
			},
		},
	}
}

func walletConnect(c *cli.Context) error {
	r := newRenderer(c)
	ctx := ReqContext(c)

	manager, err := newWalletManager(c)
	if err != nil {
		return err
	}
	if err := manager.Init(ctx); err != nil {
		return err
	}

	if manager.IsConnected() {
		r.Success("Wallet already connected: " + manager.Address())
		return nil
	}
	if config.GetWalletEnvironmentID() == "" {
		r.Failure("WALLET_ENVIRONMENT_ID is not configured", "set it and run: console wallet connect")
		return exitFailure()
	}

	session, err := manager.Connect(ctx, func(connectURL string) {
		r.Println()
		r.Header("CONNECT YOUR WALLET")
		r.Println("Open this page in a browser and approve the connection:")
		r.Println()
		r.Println("  " + connectURL)
		r.Println()
		r.Println("Waiting for the browser handoff…")
	})
	if err != nil {
		r.Failure(err.Error(), "console wallet connect")
		return exitFailure()
	}

	r.Println()
	r.Success("Wallet connected.")
	renderSession(r, session)
	return nil
}

func walletStatus(c *cli.Context) error {
	r := newRenderer(c)

	manager, err := newWalletManager(c)
	if err != nil {
		return err
	}
	if err := manager.Init(ReqContext(c)); err != nil {
		return err
	}

	session := manager.Session()
	if session == nil {
		r.Notice("No wallet connected.")
		r.Println("Connect one with: console wallet connect")
		return nil
	}

	renderSession(r, session)
	return nil
}

func walletDisconnect(c *cli.Context) error {
	r := newRenderer(c)
	ctx := ReqContext(c)

	manager, err := newWalletManager(c)
	if err != nil {
		return err
	}
	if err := manager.Init(ctx); err != nil {
		return err
	}

	connected := manager.IsConnected()
	if err := manager.Disconnect(ctx); err != nil {
		r.Failure(err.Error(), "console wallet disconnect")
		return exitFailure()
	}

	if connected {
		r.Success("Wallet disconnected.")
	} else {
		r.Notice("No wallet was connected.")
	}
	return nil
}

func renderSession(r *views.Renderer, session *wallet.Session) {
	r.Printf("  address   %s\n", session.WalletAddress)
	r.Printf("  username  %s\n", session.DisplayName())
	if session.Email != "" {
		r.Printf("  email     %s\n", session.Email)
	}
	if !session.ConnectedAt.IsZero() {
		r.Printf("  connected %s\n", humanize.Time(session.ConnectedAt))
	}
	if !session.ExpiresAt.IsZero() {
		r.Printf("  expires   %s\n", humanize.Time(session.ExpiresAt))
	}
}
