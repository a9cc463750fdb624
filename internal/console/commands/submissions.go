package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
)

const defaultWatchInterval = 5 * time.Second

// SubmissionsCommand tracks submissions after they are made
func SubmissionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "submissions",
		Usage: "Track verification and payout of submissions",
		Subcommands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "Show one submission's verification and payout state",
				ArgsUsage: "<task-id> <submission-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Poll until the submission settles",
					},
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Poll interval in watch mode",
						Value: defaultWatchInterval,
					},
				},
				Action: submissionStatus,
			},
		},
	}
}

func submissionStatus(c *cli.Context) error {
	r := newRenderer(c)

	taskID := strings.TrimSpace(c.Args().Get(0))
	submissionID := strings.TrimSpace(c.Args().Get(1))
	if taskID == "" || submissionID == "" {
		r.Println()
		r.Header("SUBMISSION NOT FOUND")
		r.Println("A task id and a submission id are both required.")
		r.Println()
		r.Println("Submissions are issued by: console tasks submit <task-id> --data '<json>'")
		return exitFailure()
	}

	client, err := newMarketClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := ReqContext(c)

	if c.Bool("watch") {
		interval := c.Duration("interval")
		if interval < time.Second {
			interval = time.Second
		}
		return watchSubmission(ctx, client, r, taskID, submissionID, interval)
	}

	view := views.NewSubmissionStatusView(taskID, submissionID)
	if err := view.Start(); err != nil {
		return err
	}
	view.Render(r)

	submission, err := client.GetSubmissionStatus(ctx, taskID, submissionID)
	if err != nil {
		if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
		view.Render(r)
		return exitFailure()
	}

	if err := view.Succeed(submission); err != nil {
		return err
	}
	view.Render(r)
	return nil
}

// watchSubmission polls one submission until it settles or the context
// ends. A transient failure renders its banner and the next tick retries;
// a missing submission stops the watch, it will never appear.
func watchSubmission(ctx context.Context, client *marketplace.Client, r *views.Renderer, taskID, submissionID string, interval time.Duration) error {
	view := views.NewSubmissionStatusView(taskID, submissionID)

	for {
		if err := view.Start(); err != nil {
			return err
		}

		submission, err := client.GetSubmissionStatus(ctx, taskID, submissionID)
		if ctx.Err() != nil {
			r.Notice("Watch stopped.")
			return nil
		}
		if err != nil {
			if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
				return failErr
			}
		} else if err := view.Succeed(submission); err != nil {
			return err
		}
		view.Render(r)

		if err != nil && (errors.Is(err, marketplace.ErrSubmissionNotFound) || errors.Is(err, marketplace.ErrTaskNotFound)) {
			return exitFailure()
		}
		if view.Settled() {
			r.Success("Submission settled.")
			return nil
		}

		select {
		case <-ctx.Done():
			r.Notice("Watch stopped.")
			return nil
		case <-time.After(interval):
		}
	}
}
