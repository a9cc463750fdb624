package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/refresh"
	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/internal/console/wallet"
	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
	"github.com/proofmine/proofmine-console/pkg/logging"
	"github.com/proofmine/proofmine-console/pkg/metrics"
	"github.com/proofmine/proofmine-console/pkg/types"
)

// DashboardCommand is the evaluator home screen
func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Show wallet, reputation and recent tasks, optionally on a refresh schedule",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "refresh",
				Usage: `Keep refreshing: a duration ("30s") or a cron expression ("*/5 * * * *")`,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Expose Prometheus metrics on this address while the dashboard runs",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Recent tasks shown per refresh",
				Value: 5,
			},
		},
		Action: runDashboard,
	}
}

func runDashboard(c *cli.Context) error {
	logger := loggerFrom(c)
	r := newRenderer(c)
	ctx := ReqContext(c)

	var schedule *refresh.Schedule
	if spec := c.String("refresh"); spec != "" {
		var err error
		schedule, err = refresh.Parse(spec)
		if err != nil {
			r.Failure(err.Error(), `console dashboard --refresh 30s`)
			return exitFailure()
		}
	}

	manager, err := newWalletManager(c)
	if err != nil {
		return err
	}
	if err := manager.Init(ctx); err != nil {
		return err
	}

	client, err := newMarketClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	// Metrics stay unregistered (and every observation a no-op) unless the
	// dashboard is asked to expose them.
	consoleMetrics := metrics.NewConsoleMetrics()
	if addr := c.String("metrics-addr"); addr != "" {
		collector := metrics.NewCollector(string(logging.ConsoleProcess))
		consoleMetrics.RegisterWith(collector)
		collector.Start()
		defer collector.Stop()

		server := metrics.NewServer(addr, collector, logger)
		server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				logger.Warnf("Metrics server shutdown: %v", err)
			}
		}()
	}

	view := views.NewDashboardView()
	if err := refreshDashboard(ctx, client, manager, view, consoleMetrics, c.Int("limit")); err != nil {
		return err
	}
	view.Render(r)

	if schedule == nil {
		if view.TasksState() == views.StateFailed {
			return exitFailure()
		}
		return nil
	}

	for {
		if err := schedule.Wait(ctx, time.Now()); err != nil {
			r.Notice("Dashboard stopped.")
			return nil
		}
		if err := refreshDashboard(ctx, client, manager, view, consoleMetrics, c.Int("limit")); err != nil {
			return err
		}
		r.Printf("\nRefreshed at %s (schedule %s). Interrupt to stop.\n",
			time.Now().Format("15:04:05"), schedule)
		view.Render(r)
	}
}

// refreshDashboard runs one refresh cycle: reputation stats for the
// connected wallet, then the recent task feed. Load failures are rendered
// by the view, never returned; the returned error only reports broken view
// transitions.
func refreshDashboard(ctx context.Context, client *marketplace.Client, manager *wallet.Manager, view *views.DashboardView, consoleMetrics *metrics.ConsoleMetrics, limit int) error {
	if session := manager.Session(); session != nil {
		view.SetWallet(&views.WalletCard{
			Address:  session.WalletAddress,
			Username: session.DisplayName(),
			Email:    session.Email,
		})
	} else {
		view.SetWallet(nil)
	}

	var cycleErr error

	if address := manager.Address(); address != "" {
		if err := view.StartStats(); err != nil {
			return err
		}
		started := time.Now()
		reputation, err := client.GetUserReputation(ctx, address)
		consoleMetrics.ObserveAPIRequest("get_reputation", statusCodeOf(err), time.Since(started))
		if errors.Is(err, marketplace.ErrUserNotFound) {
			reputation, err = &types.Reputation{
				Wallet:          address,
				ReputationScore: types.ReputationStart,
			}, nil
		}
		if err != nil {
			cycleErr = err
			if failErr := view.FailStats(views.FailureMessage(err)); failErr != nil {
				return failErr
			}
		} else if err := view.SucceedStats(reputation); err != nil {
			return err
		}
	}

	if err := view.StartTasks(); err != nil {
		return err
	}
	started := time.Now()
	tasks, total, err := client.ListTasks(ctx, limit, 0)
	consoleMetrics.ObserveAPIRequest("list_tasks", statusCodeOf(err), time.Since(started))
	if err != nil {
		if cycleErr == nil {
			cycleErr = err
		}
		if failErr := view.FailTasks(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
	} else {
		if succeedErr := view.SucceedTasks(tasks); succeedErr != nil {
			return succeedErr
		}
		consoleMetrics.SetOpenTasks(int(total))
	}

	consoleMetrics.SetBackendReachable(!marketplace.IsBackendUnreachable(err))
	consoleMetrics.RecordRefresh(cycleErr)
	return nil
}

// statusCodeOf extracts the HTTP status behind a client error: 200 for
// success, 0 when the backend was never reached.
func statusCodeOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *marketplace.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
