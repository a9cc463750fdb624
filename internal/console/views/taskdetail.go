package views

import (
	"github.com/dustin/go-humanize"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// TaskDetailView renders one task in full, including its verification
// criteria and instructions documents.
type TaskDetailView struct {
	Action
	task *types.Task
}

// NewTaskDetailView creates an empty detail view
func NewTaskDetailView() *TaskDetailView {
	return &TaskDetailView{}
}

// Succeed stores the fetched task
func (v *TaskDetailView) Succeed(task *types.Task) error {
	if err := v.Action.Succeed(); err != nil {
		return err
	}
	v.task = task
	return nil
}

// Task returns the stored task
func (v *TaskDetailView) Task() *types.Task {
	return v.task
}

// Render writes the full task record, the failure banner, or a progress
// line while loading.
func (v *TaskDetailView) Render(r *Renderer) {
	switch v.State() {
	case StateLoading:
		r.Loading("Fetching task…")
	case StateFailed:
		r.Failure(v.Message(), "console tasks show <task-id>")
	case StateSucceeded:
		renderTaskDetail(r, v.task)
	}
}

func renderTaskDetail(r *Renderer, task *types.Task) {
	r.Println()
	r.Header(task.Title)
	r.Printf("%s\n\n", task.ID)

	r.Printf("  type        %s\n", task.TaskType)
	r.Printf("  difficulty  %s\n", task.DifficultyLevel)
	r.Printf("  reward      %s tokens per submission\n", formatAmount(task.RewardPerSubmission))
	r.Printf("  budget      %s tokens total\n", formatAmount(task.TotalBudget))
	r.Printf("  slots       %s\n", task.SlotsLabel())
	if task.MaxSubmissions != nil {
		r.Printf("              %s\n",
			progressBar(int(task.CurrentSubmissions), int(*task.MaxSubmissions), 20))
	}
	r.Printf("  status      %s\n", task.Status)
	r.Printf("  posted      %s\n", humanize.Time(task.CreatedAt.Time))
	r.Printf("  builder     %s\n", task.DeveloperID)

	r.Println()
	r.Header("DESCRIPTION")
	r.Printf("%s\n", indentLines(task.Description, "  "))

	r.Println()
	r.Header("VERIFICATION CRITERIA")
	r.Printf("%s\n", indentLines(NewDocument(task.VerificationCriteria).Pretty(), "  "))

	r.Println()
	r.Header("INSTRUCTIONS")
	r.Printf("%s\n", indentLines(NewDocument(task.Instructions).Pretty(), "  "))

	r.Println()
	if task.IsOpen() {
		r.Printf("Submit work with: console tasks submit %s --data '<json>'\n", task.ID)
	} else {
		r.Notice("This task is no longer accepting submissions.")
	}
}

// RenderTaskNotFound writes the dedicated screen for a blank task id or one
// the backend does not know, with the way back to the listing. A missing
// task is not rendered as a transport failure.
func RenderTaskNotFound(r *Renderer, taskID string) {
	r.Println()
	r.Header("TASK NOT FOUND")
	if taskID == "" {
		r.Println("No task id was given.")
	} else {
		r.Printf("No task exists with id %s.\n", taskID)
	}
	r.Println()
	r.Println("Browse open tasks with: console tasks list")
}
