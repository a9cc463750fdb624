package commands

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
	"github.com/proofmine/proofmine-console/pkg/env"
	"github.com/proofmine/proofmine-console/pkg/types"
)

// AccountCommand exposes the backend's per-wallet accounting
func AccountCommand() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Inspect a wallet's marketplace standing",
		Subcommands: []*cli.Command{
			{
				Name:      "reputation",
				Usage:     "Show reputation, completed tasks and earnings for a wallet",
				ArgsUsage: "[address]",
				Action:    accountReputation,
			},
		},
	}
}

func accountReputation(c *cli.Context) error {
	r := newRenderer(c)
	ctx := ReqContext(c)

	address := strings.TrimSpace(c.Args().First())
	if address == "" {
		manager, err := newWalletManager(c)
		if err != nil {
			return err
		}
		if err := manager.Init(ctx); err != nil {
			return err
		}
		address = manager.Address()
	}
	if address == "" {
		r.Notice("No wallet given and none connected.")
		r.Println("Pass an address, or connect one with: console wallet connect")
		return exitFailure()
	}
	if !env.IsValidEthAddress(address) {
		r.Failure("not a wallet address: "+address, "console account reputation <0x...>")
		return exitFailure()
	}

	client, err := newMarketClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	view := views.NewReputationView()
	if err := view.Start(); err != nil {
		return err
	}
	view.Render(r)

	reputation, err := client.GetUserReputation(ctx, address)
	if errors.Is(err, marketplace.ErrUserNotFound) {
		// The backend tracks a wallet only after its first submission; an
		// unseen wallet carries the starting score.
		reputation, err = &types.Reputation{
			Wallet:          address,
			ReputationScore: types.ReputationStart,
		}, nil
		r.Notice("This wallet has not submitted work yet; showing starting values.")
	}
	if err != nil {
		if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
		view.Render(r)
		return exitFailure()
	}

	if err := view.Succeed(reputation); err != nil {
		return err
	}
	view.Render(r)
	return nil
}
