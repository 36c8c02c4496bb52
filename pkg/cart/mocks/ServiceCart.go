package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/cart"
)

// ServiceCart is a mock of cart.ServiceCart.
type ServiceCart struct {
	mock.Mock
}

func (_m *ServiceCart) Get(ctx context.Context, userID int64) (*cart.Summary, error) {
	ret := _m.Called(ctx, userID)
	var r0 *cart.Summary
	if v := ret.Get(0); v != nil {
		r0 = v.(*cart.Summary)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceCart) Add(ctx context.Context, userID, productID int64, quantity int) error {
	return _m.Called(ctx, userID, productID, quantity).Error(0)
}

func (_m *ServiceCart) Update(ctx context.Context, userID, productID int64, quantity *int) error {
	return _m.Called(ctx, userID, productID, quantity).Error(0)
}

func (_m *ServiceCart) Remove(ctx context.Context, userID, productID int64) error {
	return _m.Called(ctx, userID, productID).Error(0)
}

func (_m *ServiceCart) Clear(ctx context.Context, userID int64) error {
	return _m.Called(ctx, userID).Error(0)
}
