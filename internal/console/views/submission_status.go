package views

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// SubmissionStatusView renders one submission's verification and payout
// progress. Before verification has run, score and verdict show as
// pending instead of zero values.
type SubmissionStatusView struct {
	Action
	taskID       string
	submissionID string
	submission   *types.Submission
}

// NewSubmissionStatusView creates a status view for one submission
func NewSubmissionStatusView(taskID, submissionID string) *SubmissionStatusView {
	return &SubmissionStatusView{taskID: taskID, submissionID: submissionID}
}

// Succeed stores the fetched submission
func (v *SubmissionStatusView) Succeed(submission *types.Submission) error {
	if err := v.Action.Succeed(); err != nil {
		return err
	}
	v.submission = submission
	return nil
}

// Submission returns the stored submission
func (v *SubmissionStatusView) Submission() *types.Submission {
	return v.submission
}

// Settled reports whether the submission has nothing left to wait for:
// verification has run and, when it passed, the reward is paid out.
func (v *SubmissionStatusView) Settled() bool {
	s := v.submission
	if s == nil || !s.IsVerified() {
		return false
	}
	if s.IsValid != nil && !*s.IsValid {
		return true
	}
	return s.IsPaid
}

// Render writes the status card, the failure banner, or a progress line
// while loading.
func (v *SubmissionStatusView) Render(r *Renderer) {
	switch v.State() {
	case StateLoading:
		r.Loading("Fetching submission status…")
	case StateFailed:
		r.Failure(v.Message(),
			fmt.Sprintf("console submissions status %s %s", v.taskID, v.submissionID))
	case StateSucceeded:
		renderSubmissionStatus(r, v.submission)
	}
}

func renderSubmissionStatus(r *Renderer, s *types.Submission) {
	r.Println()
	r.Header("SUBMISSION " + s.ID)
	r.Printf("  task        %s\n", s.TaskID)
	r.Printf("  submitted   %s\n", humanize.Time(s.CreatedAt.Time))

	if !s.IsVerified() {
		r.Notice("  verification pending")
		return
	}

	r.Printf("  score       %.2f\n", *s.AIScore)
	switch {
	case s.IsValid == nil:
		r.Printf("  verdict     unknown\n")
	case *s.IsValid:
		r.Success("  verdict     accepted")
	default:
		r.Notice("  verdict     rejected")
	}
	if s.Feedback != nil && *s.Feedback != "" {
		r.Printf("  feedback    %s\n", *s.Feedback)
	}
	r.Printf("  reward      %s tokens\n", formatAmount(s.RewardEarned))
	if s.IsPaid {
		r.Success("  payout      paid")
	} else {
		r.Notice("  payout      pending")
	}
}
