package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	userKeyPrefix    = "user_sessions:"
)

// RedisRepo keeps one key per session with a TTL, plus a per-user set used by
// InvalidateUser. Expiry is left to Redis.
type RedisRepo struct {
	client redis.Cmdable
}

func NewRedisRepo(client redis.Cmdable) *RedisRepo {
	return &RedisRepo{client: client}
}

func userKey(userID int64) string {
	return userKeyPrefix + strconv.FormatInt(userID, 10)
}

func (r *RedisRepo) Create(ctx context.Context, userID int64, sessionID string, ttl time.Duration) error {
	if sessionID == "" {
		return ErrEmptyID
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl)
		pipe.SAdd(ctx, userKey(userID), sessionID)
		pipe.Expire(ctx, userKey(userID), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *RedisRepo) IsValid(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n == 1, nil
}

func (r *RedisRepo) Invalidate(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	uid, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, userKey(uid), sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

func (r *RedisRepo) InvalidateUser(ctx context.Context, userID int64) error {
	ids, err := r.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, userKey(userID))
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	return nil
}
