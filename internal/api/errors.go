package api

import (
	"fmt"
)

// Error type constants carried by [ClientError.Type].
const (
	ErrorTypeConfiguration  = "Configuration"
	ErrorTypeAuth           = "Auth"
	ErrorTypeHTTP           = "HTTP"
	ErrorTypeTimeout        = "Timeout"
	ErrorTypeNetwork        = "Network"
	ErrorTypeDecode         = "Decode"
	ErrorTypeRetryExhausted = "RetryExhausted"
)

// ClientError is the single error type surfaced by the client.
type ClientError struct {
	Type       string
	Message    string
	StatusCode int
	Op         Operation
	Attempt    int
	RequestID  string
	Cause      error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Op != "" {
		msg = fmt.Sprintf("%s [op=%s]", msg, e.Op)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Attempt > 0 {
		msg = fmt.Sprintf("%s (attempt %d)", msg, e.Attempt)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types so errors.Is(err, &ClientError{Type: ...}) works.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*ClientError); ok {
		return e.Type == t.Type
	}
	return false
}

// IsTransient reports whether an error is likely to succeed on retry:
// timeouts, transport failures, and 5xx (plus 429) responses qualify.
// 4xx responses, decode failures, and configuration errors do not.
func IsTransient(err error) bool {
	ce, ok := err.(*ClientError)
	if !ok {
		return false
	}
	switch ce.Type {
	case ErrorTypeTimeout, ErrorTypeNetwork:
		return true
	case ErrorTypeHTTP:
		return ce.StatusCode >= 500 || ce.StatusCode == 429
	default:
		return false
	}
}
