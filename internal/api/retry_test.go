package api

import (
	"net/http"
	"testing"
	"time"
)

func TestExponentialPolicy(t *testing.T) {
	serverErr := &ClientError{Type: ErrorTypeHTTP, StatusCode: http.StatusInternalServerError}

	t.Run("Delay Doubles", func(t *testing.T) {
		policy := ExponentialPolicy{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: 30 * time.Second}

		expected := []time.Duration{
			200 * time.Millisecond,
			400 * time.Millisecond,
			800 * time.Millisecond,
			1600 * time.Millisecond,
		}
		for i, want := range expected {
			attempt := i + 1
			delay, retry := policy.ShouldRetry(serverErr, attempt)
			if !retry {
				t.Fatalf("attempt %d: expected retry", attempt)
			}
			if delay != want {
				t.Errorf("attempt %d: expected delay %v, got %v", attempt, want, delay)
			}
		}
	})

	t.Run("Delay Capped", func(t *testing.T) {
		policy := ExponentialPolicy{MaxAttempts: 50, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
		delay, retry := policy.ShouldRetry(serverErr, 10)
		if !retry {
			t.Fatal("expected retry")
		}
		if delay != 5*time.Second {
			t.Errorf("expected capped delay 5s, got %v", delay)
		}
	})

	t.Run("Stops At MaxAttempts", func(t *testing.T) {
		policy := ExponentialPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
		if _, retry := policy.ShouldRetry(serverErr, 2); !retry {
			t.Error("attempt 2 of 3 should retry")
		}
		if _, retry := policy.ShouldRetry(serverErr, 3); retry {
			t.Error("attempt 3 of 3 must not retry")
		}
	})

	t.Run("Terminal Errors Never Retry", func(t *testing.T) {
		policy := DefaultRetryPolicy()
		terminal := []*ClientError{
			{Type: ErrorTypeHTTP, StatusCode: http.StatusNotFound},
			{Type: ErrorTypeHTTP, StatusCode: http.StatusBadRequest},
			{Type: ErrorTypeDecode},
			{Type: ErrorTypeConfiguration},
			{Type: ErrorTypeAuth},
		}
		for _, err := range terminal {
			if _, retry := policy.ShouldRetry(err, 1); retry {
				t.Errorf("%s (status %d) must not retry", err.Type, err.StatusCode)
			}
		}
	})

	t.Run("Transient Errors Retry", func(t *testing.T) {
		policy := DefaultRetryPolicy()
		transient := []*ClientError{
			{Type: ErrorTypeHTTP, StatusCode: http.StatusInternalServerError},
			{Type: ErrorTypeHTTP, StatusCode: http.StatusServiceUnavailable},
			{Type: ErrorTypeHTTP, StatusCode: http.StatusTooManyRequests},
			{Type: ErrorTypeTimeout},
			{Type: ErrorTypeNetwork},
		}
		for _, err := range transient {
			if _, retry := policy.ShouldRetry(err, 1); !retry {
				t.Errorf("%s (status %d) should retry", err.Type, err.StatusCode)
			}
		}
	})

	t.Run("Jitter Bounded", func(t *testing.T) {
		policy := ExponentialPolicy{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Minute, Jitter: 0.5}
		for i := 0; i < 50; i++ {
			delay, _ := policy.ShouldRetry(serverErr, 1)
			if delay < 200*time.Millisecond || delay > 300*time.Millisecond {
				t.Fatalf("jittered delay out of bounds: %v", delay)
			}
		}
	})

	t.Run("Default Values", func(t *testing.T) {
		policy := DefaultRetryPolicy()
		if policy.MaxAttempts != 3 || policy.BaseDelay != time.Second || policy.MaxDelay != 30*time.Second {
			t.Errorf("unexpected defaults: %+v", policy)
		}
		if policy.Jitter != 0 {
			t.Errorf("default policy must not jitter, got %v", policy.Jitter)
		}
	})
}
