// Package session tracks server-side login sessions. A token is honoured only
// while the session it is bound to exists and has not expired.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyID = errors.New("session id is required")

type Repository interface {
	Create(ctx context.Context, userID int64, sessionID string, ttl time.Duration) error
	IsValid(ctx context.Context, sessionID string) (bool, error)
	Invalidate(ctx context.Context, sessionID string) error
	InvalidateUser(ctx context.Context, userID int64) error
}
