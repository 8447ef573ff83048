// Package stealth computes randomized pre-request delays and golden-ratio retry backoff.
// Polling cadence is made non-uniform so the client is harder to fingerprint as automated.
package stealth

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	// Phi is the golden ratio
	Phi = 1.618033988749895
	// PhiInverse is 1/φ = φ-1
	PhiInverse = 0.6180339887498949

	// DefaultMinDelay is the floor for every delay
	DefaultMinDelay = 100 * time.Millisecond
	// DefaultMaxDelay is the ceiling for pre-request delays
	DefaultMaxDelay = 5 * time.Second
	// DefaultMaxRetryDelay is the ceiling for retry delays
	DefaultMaxRetryDelay = 10 * time.Second
	// RateLimitBase is the base of extended backoff after 429
	RateLimitBase = 2 * time.Second
)

// Options sets delay bounds, zero values mean defaults
type Options struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	MaxRetryDelay time.Duration
	Rand          func() float64 // uniform in [0,1), defaults to math/rand
}

// Timing computes stealth delays. Safe for concurrent use.
type Timing struct {
	minDelay      time.Duration
	maxDelay      time.Duration
	maxRetryDelay time.Duration

	mu   sync.Mutex
	rand func() float64
}

// New makes Timing with given options
func New(opts Options) *Timing {
	res := &Timing{
		minDelay:      opts.MinDelay,
		maxDelay:      opts.MaxDelay,
		maxRetryDelay: opts.MaxRetryDelay,
		rand:          opts.Rand,
	}
	if res.minDelay <= 0 {
		res.minDelay = DefaultMinDelay
	}
	if res.maxDelay <= 0 {
		res.maxDelay = DefaultMaxDelay
	}
	if res.maxRetryDelay <= 0 {
		res.maxRetryDelay = DefaultMaxRetryDelay
	}
	if res.rand == nil {
		res.rand = rand.Float64 //nolint:gosec // timing jitter, not security
	}
	return res
}

// PreRequestDelay returns base·(1 + noise·φ⁻¹) with noise uniform in [-1, 1],
// clamped to [MinDelay, MaxDelay]
func (t *Timing) PreRequestDelay(base time.Duration) time.Duration {
	noise := t.noise()
	d := time.Duration(float64(base) * (1 + noise*PhiInverse))
	return clamp(d, t.minDelay, t.maxDelay)
}

// RetryDelay returns base·φ^attempt clamped to [MinDelay, MaxRetryDelay]
func (t *Timing) RetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(base) * math.Pow(Phi, float64(attempt))
	if d > float64(t.maxRetryDelay) {
		return t.maxRetryDelay // avoids overflow on large attempts
	}
	return clamp(time.Duration(d), t.minDelay, t.maxRetryDelay)
}

// RateLimitDelay is the extended backoff after 429, 2s·φ^(attempt+1)
func (t *Timing) RateLimitDelay(attempt int) time.Duration {
	return t.RetryDelay(RateLimitBase, attempt+1)
}

// Wait suspends for d or until ctx is done
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// noise draws a value in [-1, 1]
func (t *Timing) noise() float64 {
	t.mu.Lock()
	r := t.rand()
	t.mu.Unlock()
	return r*2 - 1
}

func clamp(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
