package marketplace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmine/proofmine-console/pkg/types"
)

func validInference() *types.InferenceSubmission {
	return &types.InferenceSubmission{
		MinerWallet: "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		SubmissionData: map[string]interface{}{
			"answer":    "B",
			"reasoning": "The rubric points to option B.",
		},
	}
}

func TestSubmitInference(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/tasks/task-1/submit", r.URL.Path)

			var received types.InferenceSubmission
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			assert.Equal(t, "0x8ba1f109551bD432803012645Ac136ddd64DBA72", received.MinerWallet)

			_, _ = w.Write([]byte(`{
				"status": "success",
				"submission_id": "sub-9",
				"verification": {
					"submission_id": "sub-9",
					"task_id": "task-1",
					"is_valid": true,
					"ai_score": 0.92,
					"feedback": "Accurate and complete.",
					"model_used": "claude-3-5-sonnet-20241022",
					"verification_timestamp": 1748592900.734221,
					"execution_time_ms": 1843.7
				},
				"reward_earned": 1.38
			}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		receipt, err := client.SubmitInference(context.Background(), "task-1", validInference())
		require.NoError(t, err)

		assert.Equal(t, "sub-9", receipt.SubmissionID)
		assert.True(t, receipt.Verification.IsValid)
		assert.InDelta(t, 0.92, receipt.Verification.Score, 1e-9)
		assert.Equal(t, "claude-3-5-sonnet-20241022", receipt.Verification.Model)
		assert.InDelta(t, 1.38, receipt.RewardEarned, 1e-9)
	})

	t.Run("Success: request is issued exactly once", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			http.Error(w, `{"detail": "Verification failed: judge timed out"}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		receipt, err := client.SubmitInference(context.Background(), "task-1", validInference())
		assert.Nil(t, receipt)
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "a submission must never be repeated")
		assert.ErrorIs(t, err, ErrVerificationFailed)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Verification failed: judge timed out", apiErr.Detail)
	})

	t.Run("Failure: missing task matches the sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Task not found"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SubmitInference(context.Background(), "nope", validInference())
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("Failure: invalid wallet never reaches the backend", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		sub := validInference()
		sub.MinerWallet = "0x1234"

		_, err := client.SubmitInference(context.Background(), "task-1", sub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wallet")
		assert.Zero(t, atomic.LoadInt32(&hits))
	})

	t.Run("Failure: nil submission", func(t *testing.T) {
		client := newTestClient(t, "http://localhost:1")
		_, err := client.SubmitInference(context.Background(), "task-1", nil)
		assert.EqualError(t, err, "submission cannot be nil")
	})
}

func TestGetSubmissionStatus(t *testing.T) {
	t.Run("Success: pending submission", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tasks/task-1/submissions/sub-9", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"status": "success",
				"submission": {
					"id": "sub-9",
					"task_id": "task-1",
					"user_id": "user-3",
					"submission_data": {"answer": "B"},
					"ai_score": null,
					"is_valid": null,
					"feedback": null,
					"reward_earned": 0,
					"is_paid": false,
					"created_at": "2025-05-30T08:15:00"
				}
			}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		sub, err := client.GetSubmissionStatus(context.Background(), "task-1", "sub-9")
		require.NoError(t, err)
		assert.False(t, sub.IsVerified())
		assert.Nil(t, sub.Feedback)
	})

	t.Run("Failure: missing submission matches the sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Submission not found"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.GetSubmissionStatus(context.Background(), "task-1", "nope")
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})

	t.Run("Failure: empty ids are rejected locally", func(t *testing.T) {
		client := newTestClient(t, "http://localhost:1")

		_, err := client.GetSubmissionStatus(context.Background(), "", "sub-9")
		assert.EqualError(t, err, "task id cannot be empty")

		_, err = client.GetSubmissionStatus(context.Background(), "task-1", "")
		assert.EqualError(t, err, "submission id cannot be empty")
	})
}
