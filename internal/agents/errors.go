package agents

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// ErrNoModel is returned when the agent has no LLM configured.
	ErrNoModel = errors.New("agents: no model configured")
	// ErrInvalidResponse is returned when the model output is not a usable recommendations document.
	ErrInvalidResponse = errors.New("agents: invalid model response")
	// ErrUpstream marks failures reported by the model provider.
	ErrUpstream = errors.New("agents: upstream failure")
)

// Failure reasons reported for metrics and logs
const (
	ReasonRateLimit        = "rate-limit"
	ReasonModelUnavailable = "model-unavailable"
	ReasonUpstream         = "upstream"
	ReasonTimeout          = "timeout"
	ReasonCircuitOpen      = "circuit-open"
	ReasonInvalidResponse  = "invalid-response"
)

// UpstreamError is a failed model exchange with a classified reason.
type UpstreamError struct {
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("agents: upstream %s", e.Reason)
	}
	return fmt.Sprintf("agents: upstream %s: %v", e.Reason, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is matches ErrUpstream for provider failures. Unusable output only
// matches ErrInvalidResponse, through Unwrap.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream && e.Reason != ReasonInvalidResponse
}

// FailureReason returns the classified reason
func (e *UpstreamError) FailureReason() string { return e.Reason }

var statusPattern = regexp.MustCompile(`\b([45]\d\d)\b`)

// classify maps a provider error onto a failure reason.
func classify(err error) *UpstreamError {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream
	}
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &UpstreamError{Reason: ReasonCircuitOpen, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &UpstreamError{Reason: ReasonTimeout, Err: err}
	}

	if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		switch m[1] {
		case "429":
			return &UpstreamError{Reason: ReasonRateLimit, Err: err}
		case "403", "404":
			return &UpstreamError{Reason: ReasonModelUnavailable, Err: err}
		}
	}
	return &UpstreamError{Reason: ReasonUpstream, Err: err}
}
