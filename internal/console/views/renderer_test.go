package views

import (
	"bytes"
	"context"
	"errors"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
)

func TestFailureMessage(t *testing.T) {
	t.Run("connection refused asks to verify the backend", func(t *testing.T) {
		err := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
		msg := FailureMessage(err)
		assert.Contains(t, msg, "Verify the backend is running")
		assert.Contains(t, msg, "MARKETPLACE_API_URL")
	})

	t.Run("request timeout asks to verify the backend", func(t *testing.T) {
		msg := FailureMessage(context.DeadlineExceeded)
		assert.Contains(t, msg, "Cannot reach the marketplace backend")
	})

	t.Run("API error surfaces the backend detail", func(t *testing.T) {
		err := &marketplace.APIError{StatusCode: 422, Detail: "Task is not accepting submissions"}
		assert.Equal(t, "Task is not accepting submissions", FailureMessage(err))
	})

	t.Run("API error without detail falls back to the status code", func(t *testing.T) {
		err := &marketplace.APIError{StatusCode: 502, Detail: "no error detail provided"}
		assert.Equal(t, "the backend answered with status 502", FailureMessage(err))
	})

	t.Run("other errors pass through verbatim", func(t *testing.T) {
		assert.Equal(t, "boom", FailureMessage(errors.New("boom")))
	})

	t.Run("nil error renders empty", func(t *testing.T) {
		assert.Empty(t, FailureMessage(nil))
	})
}

func TestFailureBanner(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)
	r.Failure("backend answered 500", "console tasks list")

	out := buf.String()
	assert.Contains(t, out, "ERROR: backend answered 500")
	assert.Contains(t, out, "RETRY: console tasks list")
}

func TestLoadingStaysSilentWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)
	r.Loading("Fetching tasks…")
	assert.Empty(t, buf.String())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,250", formatAmount(1250))
	assert.Equal(t, "0.25", formatAmount(0.25))
	assert.Equal(t, "2.3333", formatAmount(2.33333))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x742d…f44e", shortAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e"))
	assert.Equal(t, "0xabc", shortAddress("0xabc"))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[#####-----]", progressBar(5, 10, 10))
	assert.Equal(t, "[----------]", progressBar(0, 10, 10))
	assert.Equal(t, "[##########]", progressBar(15, 10, 10))
	assert.Equal(t, "", progressBar(1, 0, 10))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
}
