package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
	"github.com/proofmine/proofmine-console/pkg/types"
)

// TasksCommand is the marketplace task surface: browse, inspect, submit
// and create.
func TasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Browse, inspect, submit to and create marketplace tasks",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List open tasks",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Tasks per page",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Tasks to skip",
						Value: 0,
					},
				},
				Action: listTasks,
			},
			{
				Name:      "show",
				Usage:     "Show one task in full",
				ArgsUsage: "<task-id>",
				Action:    showTask,
			},
			{
				Name:      "submit",
				Usage:     "Submit work for a task and wait for the AI verdict",
				ArgsUsage: "<task-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data",
						Usage: "Submission payload as a JSON object",
					},
					&cli.StringFlag{
						Name:  "data-file",
						Usage: "Read the submission payload from a file",
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Poll the submission after the verdict until the reward is paid",
					},
				},
				Action: submitTask,
			},
			CreateTaskCommand(),
		},
	}
}

func listTasks(c *cli.Context) error {
	r := newRenderer(c)

	client, err := newMarketClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	view := views.NewTaskListView(c.Int("offset"))
	if err := view.Start(); err != nil {
		return err
	}
	view.Render(r)

	tasks, total, err := client.ListTasks(ReqContext(c), c.Int("limit"), c.Int("offset"))
	if err != nil {
		if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
		view.Render(r)
		return exitFailure()
	}

	if err := view.Succeed(tasks, total); err != nil {
		return err
	}
	view.Render(r)
	return nil
}

func showTask(c *cli.Context) error {
	r := newRenderer(c)

	taskID := strings.TrimSpace(c.Args().First())
	if taskID == "" {
		views.RenderTaskNotFound(r, taskID)
		return exitFailure()
	}

	client, err := newMarketClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	view := views.NewTaskDetailView()
	if err := view.Start(); err != nil {
		return err
	}
	view.Render(r)

	task, err := client.GetTask(ReqContext(c), taskID)
	if err != nil {
		if errors.Is(err, marketplace.ErrTaskNotFound) {
			views.RenderTaskNotFound(r, taskID)
			return exitFailure()
		}
		if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
		view.Render(r)
		return exitFailure()
	}

	if err := view.Succeed(task); err != nil {
		return err
	}
	view.Render(r)
	return nil
}

func submitTask(c *cli.Context) error {
	r := newRenderer(c)
	ctx := ReqContext(c)

	taskID := strings.TrimSpace(c.Args().First())
	if taskID == "" {
		views.RenderTaskNotFound(r, taskID)
		return exitFailure()
	}
	retryHint := fmt.Sprintf("console tasks submit %s --data '<json>'", taskID)

	data, err := submissionData(c)
	if err != nil {
		r.Failure(err.Error(), retryHint)
		return exitFailure()
	}

	manager, err := newWalletManager(c)
	if err != nil {
		return err
	}
	if err := manager.Init(ctx); err != nil {
		return err
	}
	if !manager.IsConnected() {
		r.Notice("Submitting work needs a connected wallet.")
		r.Println("Connect one with: console wallet connect")
		return exitFailure()
	}

	submission := &types.InferenceSubmission{
		MinerWallet:    manager.Address(),
		SubmissionData: data,
	}
	if err := submission.Validate(); err != nil {
		r.Failure(err.Error(), retryHint)
		return exitFailure()
	}

	client, err := newMarketClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	view := views.NewSubmitView(taskID)
	if err := view.Start(); err != nil {
		return err
	}
	view.Render(r)

	receipt, err := client.SubmitInference(ctx, taskID, submission)
	if err != nil {
		if errors.Is(err, marketplace.ErrTaskNotFound) {
			views.RenderTaskNotFound(r, taskID)
			return exitFailure()
		}
		if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
		view.Render(r)
		return exitFailure()
	}

	if err := view.Succeed(receipt); err != nil {
		return err
	}
	view.Render(r)

	if c.Bool("watch") {
		return watchSubmission(ctx, client, r, taskID, receipt.SubmissionID, defaultWatchInterval)
	}
	return nil
}

// submissionData reads the submission payload from --data or --data-file.
// Unlike the create form's criteria documents, a malformed payload here is
// an error: there is no previously stored document to fall back to.
func submissionData(c *cli.Context) (map[string]interface{}, error) {
	raw := c.String("data")
	if file := c.String("data-file"); file != "" {
		if raw != "" {
			return nil, fmt.Errorf("--data and --data-file are mutually exclusive")
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		raw = string(content)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("submission data is required: pass --data or --data-file")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("submission data is not valid JSON: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("submission data cannot be null")
	}
	return data, nil
}
