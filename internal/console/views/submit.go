package views

import (
	"fmt"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// SubmitView renders the outcome of one inference submission: the AI
// verdict and the reward it earned, or the failure that stopped it.
type SubmitView struct {
	Action
	taskID  string
	receipt *types.SubmissionReceipt
}

// NewSubmitView creates a submit view for the given task
func NewSubmitView(taskID string) *SubmitView {
	return &SubmitView{taskID: taskID}
}

// Succeed stores the backend's receipt
func (v *SubmitView) Succeed(receipt *types.SubmissionReceipt) error {
	if err := v.Action.Succeed(); err != nil {
		return err
	}
	v.receipt = receipt
	return nil
}

// Receipt returns the stored receipt
func (v *SubmitView) Receipt() *types.SubmissionReceipt {
	return v.receipt
}

// Render writes the verdict screen, the failure banner, or a progress line
// while the backend verifies.
func (v *SubmitView) Render(r *Renderer) {
	switch v.State() {
	case StateLoading:
		r.Loading("Submitting work and waiting for verification…")
	case StateFailed:
		r.Failure(v.Message(), fmt.Sprintf("console tasks submit %s --data '<json>'", v.taskID))
	case StateSucceeded:
		renderReceipt(r, v.receipt)
	}
}

func renderReceipt(r *Renderer, receipt *types.SubmissionReceipt) {
	verdict := &receipt.Verification

	r.Println()
	if verdict.IsValid {
		r.Success("SUBMISSION ACCEPTED")
	} else {
		r.Notice("SUBMISSION REJECTED")
	}
	r.Printf("  submission  %s\n", receipt.SubmissionID)
	r.Printf("  score       %.2f %s\n", verdict.Score, progressBar(int(verdict.Score*100), 100, 20))
	r.Printf("  reward      %s tokens\n", formatAmount(receipt.RewardEarned))
	if verdict.Model != "" {
		r.Printf("  verified by %s\n", verdict.Model)
	}
	if verdict.Feedback != "" {
		r.Println()
		r.Header("FEEDBACK")
		r.Printf("%s\n", indentLines(verdict.Feedback, "  "))
	}
	r.Println()
	r.Printf("Track payout with: console submissions status %s %s\n",
		verdict.TaskID, receipt.SubmissionID)
}
