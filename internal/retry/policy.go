// Package retry holds the attempt budgets and backoff schedule applied to
// failed provider dispatches.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"

	"surveyor/internal/provider"
)

// Defaults applied by Normalize for zero-valued policy fields.
const (
	DefaultProviderAttempts = 4
	DefaultSchemaAttempts   = 2
	DefaultInitialBackoff   = time.Second
	DefaultMaxBackoff       = 30 * time.Second
	DefaultMultiplier       = 2.0
)

// Policy describes how often and how patiently a failed dispatch is retried.
// Transport failures get the full provider budget; schema violations tend to
// repeat for the same question, so they get a smaller one. Template errors
// and unknown errors are never retried.
type Policy struct {
	ProviderAttempts int
	SchemaAttempts   int
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
	Multiplier       float64
	Jitter           bool
	Clock            clockwork.Clock
}

// Default returns the production policy: 4 provider attempts, 2 schema
// attempts, 1s-30s exponential backoff with full jitter.
func Default() Policy {
	return Policy{
		ProviderAttempts: DefaultProviderAttempts,
		SchemaAttempts:   DefaultSchemaAttempts,
		InitialBackoff:   DefaultInitialBackoff,
		MaxBackoff:       DefaultMaxBackoff,
		Multiplier:       DefaultMultiplier,
		Jitter:           true,
		Clock:            clockwork.NewRealClock(),
	}
}

// Normalize fills zero fields with defaults and returns the result.
func (p Policy) Normalize() Policy {
	if p.ProviderAttempts <= 0 {
		p.ProviderAttempts = DefaultProviderAttempts
	}
	if p.SchemaAttempts <= 0 {
		p.SchemaAttempts = DefaultSchemaAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = DefaultInitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = DefaultMaxBackoff
	}
	if p.Multiplier < 1.0 {
		p.Multiplier = DefaultMultiplier
	}
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}
	return p
}

// AttemptsFor returns the attempt budget for the error kind. Non-retryable
// errors get a budget of 1: the attempt already spent.
func (p Policy) AttemptsFor(err error) int {
	var schemaErr *provider.SchemaViolation
	if errors.As(err, &schemaErr) {
		return p.SchemaAttempts
	}
	var provErr *provider.ProviderError
	if errors.As(err, &provErr) {
		return p.ProviderAttempts
	}
	return 1
}

// Backoff returns the delay before the next attempt given the number of
// failures so far (1-based). The delay grows as
// min(Initial * Multiplier^(failures-1), Max); with Jitter the delay is drawn
// uniformly from [0, computed]. A provider Retry-After larger than the
// computed delay takes precedence.
func (p Policy) Backoff(failures int, err error) time.Duration {
	if failures <= 0 {
		return 0
	}
	backoff := p.InitialBackoff
	for i := 1; i < failures; i++ {
		backoff = time.Duration(float64(backoff) * p.Multiplier)
		if backoff >= p.MaxBackoff {
			backoff = p.MaxBackoff
			break
		}
	}
	if backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	delay := backoff
	if p.Jitter && backoff > 0 {
		delay = time.Duration(rand.Int64N(int64(backoff) + 1))
	}
	if after := retryAfterHint(err); after > delay {
		delay = after
	}
	return delay
}

// Sleep waits d on the policy clock or until ctx is done, whichever comes
// first. Fake clocks make retry tests instantaneous.
func (p Policy) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	timer := clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

// retryAfterHint extracts a provider-specified delay from the error chain.
func retryAfterHint(err error) time.Duration {
	var provErr *provider.ProviderError
	if errors.As(err, &provErr) && provErr.RetryAfter > 0 {
		return provErr.RetryAfter
	}
	return 0
}
