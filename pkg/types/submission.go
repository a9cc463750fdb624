package types

import (
	"fmt"
)

const (
	MinWalletLength = 40
	MaxWalletLength = 42
)

// Submission is a miner's submission as stored by the backend. Score,
// validity and feedback stay null until verification has run.
type Submission struct {
	ID             string                 `json:"id"`
	TaskID         string                 `json:"task_id"`
	UserID         string                 `json:"user_id"`
	SubmissionData map[string]interface{} `json:"submission_data"`
	AIScore        *float64               `json:"ai_score"`
	IsValid        *bool                  `json:"is_valid"`
	Feedback       *string                `json:"feedback"`
	RewardEarned   float64                `json:"reward_earned"`
	IsPaid         bool                   `json:"is_paid"`
	CreatedAt      Timestamp              `json:"created_at"`
}

// IsVerified reports whether verification has produced a score yet
func (s *Submission) IsVerified() bool {
	return s.AIScore != nil
}

// InferenceSubmission is the document posted when a miner submits work
type InferenceSubmission struct {
	MinerWallet    string                 `json:"miner_wallet"`
	SubmissionData map[string]interface{} `json:"submission_data"`
}

// Validate enforces the backend's submission constraints client-side
func (s *InferenceSubmission) Validate() error {
	if len(s.MinerWallet) < MinWalletLength || len(s.MinerWallet) > MaxWalletLength {
		return fmt.Errorf("miner wallet must be between %d and %d characters", MinWalletLength, MaxWalletLength)
	}
	if len(s.SubmissionData) == 0 {
		return fmt.Errorf("submission data cannot be empty")
	}
	return nil
}

// SubmissionReceipt is the decoded result of a successful submit: the
// verification verdict and the reward it earned
type SubmissionReceipt struct {
	SubmissionID string
	Verification Verification
	RewardEarned float64
}
