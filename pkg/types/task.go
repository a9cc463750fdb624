package types

import (
	"fmt"
)

const (
	MinTitleLength       = 5
	MaxTitleLength       = 200
	MinDescriptionLength = 20
)

// TaskType enumerates the kinds of work a task can ask for
type TaskType string

const (
	TaskTypeEvaluation     TaskType = "evaluation"
	TaskTypePrediction     TaskType = "prediction"
	TaskTypeCodeExecution  TaskType = "code_execution"
	TaskTypeClassification TaskType = "classification"
	TaskTypeAnnotation     TaskType = "annotation"
	TaskTypeHumanReview    TaskType = "human_review"
)

// AllTaskTypes lists every valid task type, in display order
var AllTaskTypes = []TaskType{
	TaskTypeEvaluation,
	TaskTypePrediction,
	TaskTypeCodeExecution,
	TaskTypeClassification,
	TaskTypeAnnotation,
	TaskTypeHumanReview,
}

// IsValid reports whether the task type is one the backend accepts
func (t TaskType) IsValid() bool {
	for _, known := range AllTaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty enumerates task difficulty levels
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties lists every valid difficulty, in display order
var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

// IsValid reports whether the difficulty is one the backend accepts
func (d Difficulty) IsValid() bool {
	for _, known := range AllDifficulties {
		if d == known {
			return true
		}
	}
	return false
}

// TaskStatusActive is the only status the backend lists tasks under
const TaskStatusActive = "active"

// Task is a mining task as returned by the backend. All fields are owned by
// the backend; the console never mutates them locally.
type Task struct {
	ID                   string                 `json:"id"`
	DeveloperID          string                 `json:"developer_id"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	TaskType             TaskType               `json:"task_type"`
	DifficultyLevel      Difficulty             `json:"difficulty_level"`
	RewardPerSubmission  float64                `json:"reward_per_submission"`
	TotalBudget          float64                `json:"total_budget"`
	MaxSubmissions       *int64                 `json:"max_submissions"`
	CurrentSubmissions   int64                  `json:"current_submissions"`
	VerificationCriteria map[string]interface{} `json:"verification_criteria"`
	Instructions         map[string]interface{} `json:"instructions"`
	Status               string                 `json:"status"`
	CreatedAt            Timestamp              `json:"created_at"`
}

// SlotsLabel renders the submission slot usage as "used/cap". A task without
// a cap renders as "used/∞".
func (t *Task) SlotsLabel() string {
	if t.MaxSubmissions == nil {
		return fmt.Sprintf("%d/∞", t.CurrentSubmissions)
	}
	return fmt.Sprintf("%d/%d", t.CurrentSubmissions, *t.MaxSubmissions)
}

// IsOpen reports whether the task still accepts submissions
func (t *Task) IsOpen() bool {
	if t.Status != TaskStatusActive {
		return false
	}
	if t.MaxSubmissions != nil && t.CurrentSubmissions >= *t.MaxSubmissions {
		return false
	}
	return true
}

// CreateTaskRequest is the document posted to create a task
type CreateTaskRequest struct {
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	TaskType             TaskType               `json:"task_type"`
	DifficultyLevel      Difficulty             `json:"difficulty_level"`
	RewardPerSubmission  float64                `json:"reward_per_submission"`
	TotalBudget          float64                `json:"total_budget"`
	MaxSubmissions       *int64                 `json:"max_submissions,omitempty"`
	VerificationCriteria map[string]interface{} `json:"verification_criteria"`
	Instructions         map[string]interface{} `json:"instructions"`
}

// Validate enforces the backend's constraints client-side so an invalid form
// never issues a network request
func (r *CreateTaskRequest) Validate() error {
	if len(r.Title) < MinTitleLength || len(r.Title) > MaxTitleLength {
		return fmt.Errorf("title must be between %d and %d characters", MinTitleLength, MaxTitleLength)
	}
	if len(r.Description) < MinDescriptionLength {
		return fmt.Errorf("description must be at least %d characters", MinDescriptionLength)
	}
	if !r.TaskType.IsValid() {
		return fmt.Errorf("unknown task type %q", r.TaskType)
	}
	if !r.DifficultyLevel.IsValid() {
		return fmt.Errorf("unknown difficulty level %q", r.DifficultyLevel)
	}
	if r.RewardPerSubmission <= 0 {
		return fmt.Errorf("reward per submission must be greater than 0")
	}
	if r.TotalBudget <= 0 {
		return fmt.Errorf("total budget must be greater than 0")
	}
	if r.MaxSubmissions != nil && *r.MaxSubmissions <= 0 {
		return fmt.Errorf("max submissions must be greater than 0 when set")
	}
	if r.VerificationCriteria == nil {
		return fmt.Errorf("verification criteria are required")
	}
	if r.Instructions == nil {
		return fmt.Errorf("instructions are required")
	}
	return nil
}
