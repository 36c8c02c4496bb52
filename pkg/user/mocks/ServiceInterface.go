package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/user"
)

// ServiceInterface is a mock of user.ServiceInterface.
type ServiceInterface struct {
	mock.Mock
}

func (_m *ServiceInterface) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	ret := _m.Called(ctx, in)
	var r0 *user.AuthResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*user.AuthResult)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceInterface) Login(ctx context.Context, in user.LoginInput, clientIP string) (*user.AuthResult, error) {
	ret := _m.Called(ctx, in, clientIP)
	var r0 *user.AuthResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*user.AuthResult)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceInterface) Logout(ctx context.Context, sessionID string) error {
	return _m.Called(ctx, sessionID).Error(0)
}

func (_m *ServiceInterface) GetByID(ctx context.Context, id int64) (*user.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *user.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*user.User)
	}
	return r0, ret.Error(1)
}
