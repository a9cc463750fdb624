package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// SubmitInference submits a miner's answer for a task and waits for the AI
// verdict. On success the receipt carries the verification and the reward it
// earned. A rejected or failed verification still comes back as an error the
// caller can classify: ErrTaskNotFound for a missing task,
// ErrVerificationFailed when the backend's verifier gave up, and a plain
// *APIError for everything else. The request is issued exactly once.
func (c *Client) SubmitInference(ctx context.Context, taskID string, sub *types.InferenceSubmission) (*types.SubmissionReceipt, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id cannot be empty")
	}
	if sub == nil {
		return nil, fmt.Errorf("submission cannot be nil")
	}
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}

	var envelope types.SubmitInferenceResponse
	err := c.postJSON(ctx, "/tasks/"+url.PathEscape(taskID)+"/submit", sub, &envelope)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, apiErr.withSentinel(ErrTaskNotFound)
		}
		return nil, fmt.Errorf("failed to submit to task %s: %w", taskID, err)
	}

	receipt := &types.SubmissionReceipt{
		SubmissionID: envelope.SubmissionID,
		Verification: envelope.Verification,
		RewardEarned: envelope.RewardEarned,
	}

	c.logger.Infof("Submission %s verified: valid=%t score=%.2f reward=%.4f",
		receipt.SubmissionID,
		receipt.Verification.IsValid,
		receipt.Verification.Score,
		receipt.RewardEarned)

	return receipt, nil
}

// GetSubmissionStatus fetches one submission under a task. A missing
// submission matches ErrSubmissionNotFound under errors.Is.
func (c *Client) GetSubmissionStatus(ctx context.Context, taskID, submissionID string) (*types.Submission, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id cannot be empty")
	}
	if submissionID == "" {
		return nil, fmt.Errorf("submission id cannot be empty")
	}

	path := "/tasks/" + url.PathEscape(taskID) + "/submissions/" + url.PathEscape(submissionID)

	var envelope types.SubmissionResponse
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, apiErr.withSentinel(ErrSubmissionNotFound)
		}
		return nil, fmt.Errorf("failed to fetch submission %s: %w", submissionID, err)
	}

	return &envelope.Submission, nil
}
