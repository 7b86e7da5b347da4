package embedding

import (
	"context"
	"math/rand"
	"time"

	"docuwrite/internal/domain"
)

// Policy bounds retries around a flaky embedding provider.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

// DefaultPolicy returns the retry policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Jitter:      true,
	}
}

// Delay returns the backoff before the given zero-based retry attempt.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := p.BaseDelay << attempt
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	if p.Jitter {
		// up to 25% random extra to spread concurrent retries
		d += time.Duration(rand.Int63n(int64(d)/4 + 1))
	}
	return d
}

type retrying struct {
	inner  Embedder
	policy Policy
}

// WithRetry wraps an embedder so transient failures are retried per policy.
// When the attempt budget is exhausted the last error is surfaced as a
// ProviderError.
func WithRetry(e Embedder, p Policy) Embedder {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	return &retrying{inner: e, policy: p}
}

func (r *retrying) Name() string { return r.inner.Name() }

func (r *retrying) Dimension() int { return r.inner.Dimension() }

func (r *retrying) Embed(ctx context.Context, text string) ([]float64, error) {
	var lastErr error
	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.policy.Delay(attempt - 1)):
			}
		}
		vec, err := r.inner.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, &domain.ProviderError{Attempts: r.policy.MaxAttempts, Err: lastErr}
}
