package types

// Verification is the AI verdict for a submission, decoded from the wire at
// the client boundary so views never handle untyped verification payloads.
// Score is in [0, 1]; the reward is reward_per_submission * score.
type Verification struct {
	SubmissionID    string    `json:"submission_id"`
	TaskID          string    `json:"task_id"`
	IsValid         bool      `json:"is_valid"`
	Score           float64   `json:"ai_score"`
	Feedback        string    `json:"feedback"`
	Model           string    `json:"model_used"`
	VerifiedAt      Timestamp `json:"verification_timestamp"`
	ExecutionTimeMS float64   `json:"execution_time_ms"`
}
