package ratelimiter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	PolicyDelay  = "delay"
	PolicyBucket = "bucket"
)

// Throttle paces outgoing calls. Wait blocks until the next call may be
// issued or ctx is done.
type Throttle interface {
	Wait(ctx context.Context) error
}

// Factory builds a fresh Throttle for one batch of calls so that batches
// served for different requests never share pacing state.
type Factory func() Throttle

func NewFactory(policy string, interval time.Duration) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case PolicyDelay, "":
		return func() Throttle { return NewFixedDelay(interval) }, nil
	case PolicyBucket:
		return func() Throttle { return NewTokenBucket(interval) }, nil
	default:
		return nil, fmt.Errorf("unknown throttle policy %q", policy)
	}
}

// FixedDelay sleeps for the same delay before every call.
type FixedDelay struct {
	delay time.Duration
}

func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: max(delay, 0)}
}

func (d *FixedDelay) Wait(ctx context.Context) error {
	if d.delay == 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d.delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TokenBucket lets the first call through immediately and spaces the
// following ones at least interval apart.
type TokenBucket struct {
	limiter *rate.Limiter
}

func NewTokenBucket(interval time.Duration) *TokenBucket {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &TokenBucket{limiter: rate.NewLimiter(limit, 1)}
}

func (b *TokenBucket) Wait(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for token: %w", err)
	}

	return nil
}
