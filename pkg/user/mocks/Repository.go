package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/user"
)

// Repository is a mock of user.Repository.
type Repository struct {
	mock.Mock
}

func (_m *Repository) Create(ctx context.Context, u *user.User) error {
	return _m.Called(ctx, u).Error(0)
}

func (_m *Repository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	ret := _m.Called(ctx, email)
	var r0 *user.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*user.User)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *user.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*user.User)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) List(ctx context.Context) ([]*user.User, error) {
	ret := _m.Called(ctx)
	var r0 []*user.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]*user.User)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) SetRole(ctx context.Context, email, role string) error {
	return _m.Called(ctx, email, role).Error(0)
}

func (_m *Repository) BackfillRoles(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *Repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return _m.Called(ctx, id, hash).Error(0)
}
