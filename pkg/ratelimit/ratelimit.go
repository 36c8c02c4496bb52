// Package ratelimit throttles repeated attempts per identifier (an email or
// a client IP). An identifier gets max attempts; the window is measured from
// its last accepted attempt, so the counter resets once the identifier has
// been quiet for longer than the window.
package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

type Limiter interface {
	// Allow records an attempt and reports whether it may proceed.
	Allow(ctx context.Context, identifier string) (bool, error)
	// Reset forgets every attempt recorded for identifier.
	Reset(ctx context.Context, identifier string) error
}

type Options struct {
	MaxAttempts int
	Window      time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	return o
}
