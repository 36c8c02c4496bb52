package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// KEYS[1] counter key, ARGV[1] max attempts, ARGV[2] key lifetime in ms.
// The TTL is refreshed only on accepted attempts.
var allowScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count >= tonumber(ARGV[1]) then
	return 0
end
redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

type RedisLimiter struct {
	client redis.Cmdable
	opts   Options
}

func NewRedisLimiter(client redis.Cmdable, opts Options) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		opts:   opts.withDefaults(),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	res, err := allowScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + identifier},
		// one extra ms keeps an attempt at exactly the window inside it,
		// matching MemoryLimiter
		l.opts.MaxAttempts, l.opts.Window.Milliseconds()+1,
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return res == 1, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.client.Del(ctx, redisKeyPrefix+identifier).Err(); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
