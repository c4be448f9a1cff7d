// Package retry is the single retry policy applied to calls that leave
// the process. Call sites share one policy instead of hand-rolling
// their own loops.
package retry

import (
	"context"
	"time"
)

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// MaxAttempts counts the first try. A value below 1 means one attempt.
	MaxAttempts int
	// InitialBackoff is the wait before the second attempt.
	InitialBackoff time.Duration
	// Multiplier grows the backoff after each failed attempt.
	Multiplier float64
	// MaxBackoff caps the wait between attempts.
	MaxBackoff time.Duration
	// Retryable decides whether an error is worth another attempt.
	// Nil means every error is retryable.
	Retryable func(error) bool
}

// Default is the policy used for external-store and geocoding calls.
func Default() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 200 * time.Millisecond,
		Multiplier:     2,
		MaxBackoff:     2 * time.Second,
	}
}

// Do runs fn until it succeeds, the attempts run out, the error is not
// retryable, or the context is done. The last error is returned.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := p.InitialBackoff
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if p.Multiplier > 1 {
			backoff = time.Duration(float64(backoff) * p.Multiplier)
		}
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
	return err
}
