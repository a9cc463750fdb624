package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// Sentinel errors surfaced by the client. They are wrapped inside an
// *APIError so callers can match with errors.Is while still reading the
// backend's detail text via errors.As.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrVerificationFailed = errors.New("verification failed")
)

// APIError is a non-2xx response from the marketplace backend, with the
// detail message the backend attached to it.
type APIError struct {
	StatusCode int
	Detail     string
	sentinel   error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace API error %d: %s", e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// newAPIError decodes the backend's error body into an *APIError. The
// backend wraps failures as {"detail": ...}; validation failures carry a
// structured detail which is kept verbatim as text.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var errResp types.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		apiErr.Detail = errResp.Detail
	} else {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	if apiErr.Detail == "" {
		apiErr.Detail = "no error detail provided"
	}

	if strings.HasPrefix(apiErr.Detail, "Verification failed") {
		apiErr.sentinel = ErrVerificationFailed
	}
	return apiErr
}

// withSentinel returns a copy of the error that matches the given sentinel
// under errors.Is
func (e *APIError) withSentinel(sentinel error) *APIError {
	return &APIError{StatusCode: e.StatusCode, Detail: e.Detail, sentinel: sentinel}
}

// IsBackendUnreachable reports whether an error means the marketplace
// backend could not be reached at all, as opposed to the backend answering
// with an error. Views use this to tell "backend down" from "bad request".
func IsBackendUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		var errno syscall.Errno
		if errors.As(opErr.Err, &errno) {
			switch errno {
			case syscall.ECONNREFUSED, syscall.ENETUNREACH, syscall.EHOSTUNREACH, syscall.ETIMEDOUT:
				return true
			}
		}
		var dnsErr *net.DNSError
		if errors.As(opErr.Err, &dnsErr) {
			return true
		}
		return true
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
