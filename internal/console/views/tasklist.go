package views

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// TaskListView renders a page of the marketplace's open tasks as cards.
type TaskListView struct {
	Action
	tasks  []types.Task
	total  int64
	offset int
}

// NewTaskListView creates a task list view for the page starting at offset
func NewTaskListView(offset int) *TaskListView {
	return &TaskListView{offset: offset}
}

// Succeed stores the fetched page
func (v *TaskListView) Succeed(tasks []types.Task, total int64) error {
	if err := v.Action.Succeed(); err != nil {
		return err
	}
	v.tasks = tasks
	v.total = total
	return nil
}

// Tasks returns the stored page
func (v *TaskListView) Tasks() []types.Task {
	return v.tasks
}

// Render writes the current state: one card per task, the failure banner,
// or a progress line while loading. The slot column shows current/max, or
// current/∞ for uncapped tasks.
func (v *TaskListView) Render(r *Renderer) {
	switch v.State() {
	case StateLoading:
		r.Loading("Fetching tasks…")
	case StateFailed:
		r.Failure(v.Message(), "console tasks list")
	case StateSucceeded:
		if len(v.tasks) == 0 {
			r.Println("No open tasks right now. Check back soon.")
			return
		}
		r.Header(fmt.Sprintf("MARKETPLACE TASKS (%d-%d of %d)",
			v.offset+1, v.offset+len(v.tasks), v.total))
		for i := range v.tasks {
			renderTaskCard(r, v.offset+i+1, &v.tasks[i])
		}
		r.Println()
		r.Println("Show one task with: console tasks show <task-id>")
	}
}

func renderTaskCard(r *Renderer, ordinal int, task *types.Task) {
	r.Printf("\n#%d  %s\n", ordinal, r.bold(task.Title))
	r.Printf("    %s · %s · %s tokens per submission\n",
		task.TaskType, task.DifficultyLevel, formatAmount(task.RewardPerSubmission))
	r.Printf("    slots %s · posted %s · id %s\n",
		task.SlotsLabel(), humanize.Time(task.CreatedAt.Time), task.ID)
}
