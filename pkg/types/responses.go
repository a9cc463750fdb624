package types

// Response envelopes as returned by the marketplace backend. Successful
// responses carry "status": "success"; failures carry a detail message.

// StatusSuccess is the envelope status for every successful response
const StatusSuccess = "success"

// TaskListResponse is the envelope for GET /tasks
type TaskListResponse struct {
	Status string `json:"status"`
	Tasks  []Task `json:"tasks"`
	Total  int64  `json:"total"`
}

// TaskResponse is the envelope for GET /tasks/{id} and POST /tasks/create
type TaskResponse struct {
	Status string `json:"status"`
	Task   Task   `json:"task"`
}

// SubmitInferenceResponse is the envelope for POST /tasks/{id}/submit
type SubmitInferenceResponse struct {
	Status       string       `json:"status"`
	SubmissionID string       `json:"submission_id"`
	Verification Verification `json:"verification"`
	RewardEarned float64      `json:"reward_earned"`
}

// SubmissionResponse is the envelope for GET /tasks/{id}/submissions/{sid}
type SubmissionResponse struct {
	Status     string     `json:"status"`
	Submission Submission `json:"submission"`
}

// ReputationResponse is the envelope for GET /users/{wallet}/reputation
type ReputationResponse struct {
	Status              string  `json:"status"`
	Wallet              string  `json:"wallet"`
	ReputationScore     int     `json:"reputation_score"`
	TotalTasksCompleted int64   `json:"total_tasks_completed"`
	TotalRewardsEarned  float64 `json:"total_rewards_earned"`
}

// HealthCheckResponse is the envelope for GET /health
type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Timestamp Timestamp `json:"timestamp"`
}

// ErrorResponse carries the backend's detail text for failed requests
type ErrorResponse struct {
	Detail string `json:"detail"`
}
