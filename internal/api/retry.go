package api

import (
	"math/rand"
	"time"
)

// RetryPolicy decides whether a failed attempt should be retried and how long
// to wait before the next one. Injected into the client so tests can use a
// zero-delay policy instead of waiting on real timers.
type RetryPolicy interface {
	// ShouldRetry reports the backoff delay before the next attempt and
	// whether one should be made. attempt counts from 1 and includes the
	// attempt that just failed.
	ShouldRetry(err error, attempt int) (time.Duration, bool)
}

// ExponentialPolicy retries transient failures with exponential backoff:
// the delay before attempt n+1 is BaseDelay * 2^n, capped at MaxDelay.
// Jitter (0..1) optionally adds a random fraction of the delay.
type ExponentialPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      float64
}

// DefaultRetryPolicy matches the deployed dashboard: three total attempts with
// a one second base delay and no jitter.
func DefaultRetryPolicy() ExponentialPolicy {
	return ExponentialPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// ShouldRetry implements [RetryPolicy].
func (p ExponentialPolicy) ShouldRetry(err error, attempt int) (time.Duration, bool) {
	if attempt >= p.MaxAttempts {
		return 0, false
	}
	if !IsTransient(err) {
		return 0, false
	}
	return p.delay(attempt), true
}

func (p ExponentialPolicy) delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 30 {
		attempt = 30
	}

	backoff := p.BaseDelay
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if p.MaxDelay > 0 && backoff > p.MaxDelay {
			backoff = p.MaxDelay
			break
		}
	}

	jitter := p.Jitter
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 1 {
		jitter = 1
	}
	if jitter > 0 {
		backoff += time.Duration(float64(backoff) * jitter * rand.Float64())
		if p.MaxDelay > 0 && backoff > p.MaxDelay {
			backoff = p.MaxDelay
		}
	}
	return backoff
}
