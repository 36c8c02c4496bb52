package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock of session.Repository.
type Repository struct {
	mock.Mock
}

func (_m *Repository) Create(ctx context.Context, userID int64, sessionID string, ttl time.Duration) error {
	return _m.Called(ctx, userID, sessionID, ttl).Error(0)
}

func (_m *Repository) IsValid(ctx context.Context, sessionID string) (bool, error) {
	ret := _m.Called(ctx, sessionID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Repository) Invalidate(ctx context.Context, sessionID string) error {
	return _m.Called(ctx, sessionID).Error(0)
}

func (_m *Repository) InvalidateUser(ctx context.Context, userID int64) error {
	return _m.Called(ctx, userID).Error(0)
}
