package ratelimit

import (
	"context"
	"sync"
	"time"
)

type attempt struct {
	count int
	last  time.Time
}

// MemoryLimiter keeps attempts in process memory. Use RedisLimiter when more
// than one instance serves logins.
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string]attempt
	opts     Options
	now      func() time.Time
}

func NewMemoryLimiter(opts Options) *MemoryLimiter {
	return &MemoryLimiter{
		attempts: make(map[string]attempt),
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	a, ok := l.attempts[identifier]

	if !ok || now.Sub(a.last) > l.opts.Window {
		l.attempts[identifier] = attempt{count: 1, last: now}
		return true, nil
	}

	// a rejected attempt does not extend the window
	if a.count >= l.opts.MaxAttempts {
		return false, nil
	}

	l.attempts[identifier] = attempt{count: a.count + 1, last: now}
	return true, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, identifier)
	return nil
}

// Len reports how many identifiers are tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.attempts)
}

// Sweep drops identifiers whose window has passed.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, a := range l.attempts {
		if now.Sub(a.last) > l.opts.Window {
			delete(l.attempts, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (l *MemoryLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
