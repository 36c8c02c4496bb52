package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/cart"
)

// Repository is a mock of cart.Repository.
type Repository struct {
	mock.Mock
}

func (_m *Repository) Items(ctx context.Context, userID int64) ([]*cart.Item, error) {
	ret := _m.Called(ctx, userID)
	var r0 []*cart.Item
	if v := ret.Get(0); v != nil {
		r0 = v.([]*cart.Item)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) Add(ctx context.Context, userID, productID int64, quantity int) error {
	return _m.Called(ctx, userID, productID, quantity).Error(0)
}

func (_m *Repository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return _m.Called(ctx, userID, productID, quantity).Error(0)
}

func (_m *Repository) Remove(ctx context.Context, userID, productID int64) error {
	return _m.Called(ctx, userID, productID).Error(0)
}

func (_m *Repository) Clear(ctx context.Context, userID int64) error {
	return _m.Called(ctx, userID).Error(0)
}
