package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/pkg/types"
)

// CreateTaskCommand is the builder surface: post a new task from flags, a
// YAML task file, or an interactive form.
func CreateTaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Post a new task to the marketplace",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Task title (5-200 characters)"},
			&cli.StringFlag{Name: "description", Usage: "What evaluators are asked to do (at least 20 characters)"},
			&cli.StringFlag{Name: "type", Usage: "Task type: evaluation, prediction, code_execution, classification, annotation, human_review"},
			&cli.StringFlag{Name: "difficulty", Usage: "Difficulty: easy, medium, hard"},
			&cli.StringFlag{Name: "reward", Usage: "Reward per submission in tokens"},
			&cli.StringFlag{Name: "budget", Usage: "Total budget in tokens"},
			&cli.StringFlag{Name: "max-submissions", Usage: "Submission cap (empty or 0 for unlimited)"},
			&cli.StringFlag{Name: "criteria", Usage: "Verification criteria as a JSON object"},
			&cli.StringFlag{Name: "instructions", Usage: "Instructions as a JSON object"},
			&cli.StringFlag{Name: "file", Usage: "Read the task from a YAML file instead of flags"},
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Fill the task in with prompts"},
		},
		Action: createTask,
	}
}

func createTask(c *cli.Context) error {
	r := newRenderer(c)
	retryHint := "console tasks create --interactive"

	var req *types.CreateTaskRequest
	var err error
	switch {
	case c.Bool("interactive"):
		req, err = promptTaskRequest()
	case c.String("file") != "":
		req, err = taskRequestFromFile(c.String("file"))
	default:
		req = taskRequestFromFlags(c)
	}
	if err != nil {
		r.Failure(err.Error(), retryHint)
		return exitFailure()
	}

	// Client-side validation: an invalid form never issues a request.
	if err := req.Validate(); err != nil {
		r.Failure(err.Error(), retryHint)
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
	r.Loading("Posting task…")

	task, err := client.CreateTask(ReqContext(c), req)
	if err != nil {
		if failErr := view.Fail(views.FailureMessage(err)); failErr != nil {
			return failErr
		}
		view.Render(r)
		return exitFailure()
	}

	if err := view.Succeed(task); err != nil {
		return err
	}
	r.Success("Task created.")
	view.Render(r)
	return nil
}

func taskRequestFromFlags(c *cli.Context) *types.CreateTaskRequest {
	return &types.CreateTaskRequest{
		Title:                strings.TrimSpace(c.String("title")),
		Description:          strings.TrimSpace(c.String("description")),
		TaskType:             types.TaskType(c.String("type")),
		DifficultyLevel:      types.Difficulty(c.String("difficulty")),
		RewardPerSubmission:  parseAmount(c.String("reward")),
		TotalBudget:          parseAmount(c.String("budget")),
		MaxSubmissions:       parseCap(c.String("max-submissions")),
		VerificationCriteria: documentFrom(c.String("criteria")),
		Instructions:         documentFrom(c.String("instructions")),
	}
}

// taskFile is the YAML shape of a task definition file
type taskFile struct {
	Title                string                 `yaml:"title"`
	Description          string                 `yaml:"description"`
	Type                 string                 `yaml:"type"`
	Difficulty           string                 `yaml:"difficulty"`
	RewardPerSubmission  float64                `yaml:"reward_per_submission"`
	TotalBudget          float64                `yaml:"total_budget"`
	MaxSubmissions       int64                  `yaml:"max_submissions"`
	VerificationCriteria map[string]interface{} `yaml:"verification_criteria"`
	Instructions         map[string]interface{} `yaml:"instructions"`
}

func taskRequestFromFile(path string) (*types.CreateTaskRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var file taskFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("task file is not valid YAML: %w", err)
	}

	req := &types.CreateTaskRequest{
		Title:                strings.TrimSpace(file.Title),
		Description:          strings.TrimSpace(file.Description),
		TaskType:             types.TaskType(file.Type),
		DifficultyLevel:      types.Difficulty(file.Difficulty),
		RewardPerSubmission:  file.RewardPerSubmission,
		TotalBudget:          file.TotalBudget,
		VerificationCriteria: file.VerificationCriteria,
		Instructions:         file.Instructions,
	}
	if file.MaxSubmissions > 0 {
		req.MaxSubmissions = &file.MaxSubmissions
	}
	if req.VerificationCriteria == nil {
		req.VerificationCriteria = map[string]interface{}{}
	}
	if req.Instructions == nil {
		req.Instructions = map[string]interface{}{}
	}
	return req, nil
}

func promptTaskRequest() (*types.CreateTaskRequest, error) {
	title, err := (&promptui.Prompt{
		Label: "Title",
		Validate: func(input string) error {
			if len(strings.TrimSpace(input)) < types.MinTitleLength {
				return fmt.Errorf("at least %d characters", types.MinTitleLength)
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	description, err := (&promptui.Prompt{
		Label: "Description",
		Validate: func(input string) error {
			if len(strings.TrimSpace(input)) < types.MinDescriptionLength {
				return fmt.Errorf("at least %d characters", types.MinDescriptionLength)
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	typeIdx, _, err := (&promptui.Select{
		Label: "Task type",
		Items: types.AllTaskTypes,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	difficultyIdx, _, err := (&promptui.Select{
		Label: "Difficulty",
		Items: types.AllDifficulties,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	reward, err := (&promptui.Prompt{
		Label:    "Reward per submission (tokens)",
		Validate: validateAmount,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	budget, err := (&promptui.Prompt{
		Label:    "Total budget (tokens)",
		Validate: validateAmount,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	capInput, err := (&promptui.Prompt{
		Label: "Max submissions (empty for unlimited)",
		Validate: func(input string) error {
			input = strings.TrimSpace(input)
			if input == "" {
				return nil
			}
			if value, err := strconv.ParseInt(input, 10, 64); err != nil || value <= 0 {
				return fmt.Errorf("must be a whole number greater than 0, or empty")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}

	criteria, err := promptDocument("Verification criteria (JSON object)")
	if err != nil {
		return nil, err
	}
	instructions, err := promptDocument("Instructions (JSON object)")
	if err != nil {
		return nil, err
	}

	return &types.CreateTaskRequest{
		Title:                strings.TrimSpace(title),
		Description:          strings.TrimSpace(description),
		TaskType:             types.AllTaskTypes[typeIdx],
		DifficultyLevel:      types.AllDifficulties[difficultyIdx],
		RewardPerSubmission:  parseAmount(reward),
		TotalBudget:          parseAmount(budget),
		MaxSubmissions:       parseCap(capInput),
		VerificationCriteria: criteria,
		Instructions:         instructions,
	}, nil
}

// promptDocument keeps prompting until the input is a valid JSON object.
// Malformed input keeps the document it had, exactly like the flag form.
func promptDocument(label string) (map[string]interface{}, error) {
	doc := views.NewDocument(nil)
	raw, err := (&promptui.Prompt{
		Label:   label,
		Default: "{}",
		Validate: func(input string) error {
			if !views.NewDocument(nil).Set(input) {
				return fmt.Errorf("must be a JSON object")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("form abandoned: %w", err)
	}
	doc.Set(raw)
	return doc.Value(), nil
}

// validateAmount is the prompt validator for token amounts
func validateAmount(input string) error {
	if parseAmount(input) <= 0 {
		return fmt.Errorf("must be a number greater than 0")
	}
	return nil
}

// parseAmount turns a numeric form input into a float64. Unparseable input
// becomes 0 and is rejected by the greater-than-zero validation instead of
// crashing the form.
func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseCap reads the optional submission cap. Absent, zero, negative and
// unparseable input all mean uncapped.
func parseCap(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

// documentFrom parses a JSON object flag, keeping the empty document when
// the input is malformed
func documentFrom(raw string) map[string]interface{} {
	doc := views.NewDocument(nil)
	if raw != "" {
		doc.Set(raw)
	}
	return doc.Value()
}
