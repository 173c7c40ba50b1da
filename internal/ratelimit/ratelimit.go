// Package ratelimit paces emitted output lines.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces line emission. Zero value is not usable; construct with New.
type Limiter struct {
	limiter *rate.Limiter
}

// New returns a limiter allowing linesPerSecond emissions with a burst of
// one. Zero or negative disables pacing.
func New(linesPerSecond float64) *Limiter {
	if linesPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(linesPerSecond), 1)}
}

// Wait blocks until the next line may be emitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a line may be emitted immediately without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
