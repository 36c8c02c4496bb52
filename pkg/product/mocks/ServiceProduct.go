package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/product"
)

// ServiceProduct is a mock of product.ServiceProduct.
type ServiceProduct struct {
	mock.Mock
}

func (_m *ServiceProduct) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	ret := _m.Called(ctx, opts)
	return productsOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceProduct) Featured(ctx context.Context, limit int64) ([]*product.Product, error) {
	ret := _m.Called(ctx, limit)
	return productsOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceProduct) Related(ctx context.Context, id int64, limit int64) ([]*product.Product, error) {
	ret := _m.Called(ctx, id, limit)
	return productsOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceProduct) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	ret := _m.Called(ctx, id)
	return productOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceProduct) Create(ctx context.Context, in product.Input) (*product.Product, error) {
	ret := _m.Called(ctx, in)
	return productOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceProduct) Update(ctx context.Context, id int64, patch product.Patch) (*product.Product, error) {
	ret := _m.Called(ctx, id, patch)
	return productOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceProduct) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}
