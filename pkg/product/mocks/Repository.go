package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/product"
)

// Repository is a mock of product.Repository.
type Repository struct {
	mock.Mock
}

func productOrNil(v interface{}) *product.Product {
	if v == nil {
		return nil
	}
	return v.(*product.Product)
}

func productsOrNil(v interface{}) []*product.Product {
	if v == nil {
		return nil
	}
	return v.([]*product.Product)
}

func (_m *Repository) Create(ctx context.Context, p *product.Product) error {
	return _m.Called(ctx, p).Error(0)
}

func (_m *Repository) InsertMany(ctx context.Context, products []*product.Product) error {
	return _m.Called(ctx, products).Error(0)
}

func (_m *Repository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	ret := _m.Called(ctx, id)
	return productOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) Find(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	ret := _m.Called(ctx, f)
	return productsOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) Update(ctx context.Context, id int64, patch product.Patch) (*product.Product, error) {
	ret := _m.Called(ctx, id, patch)
	return productOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) Delete(ctx context.Context, id int64) (*product.Product, error) {
	ret := _m.Called(ctx, id)
	return productOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) CountByCategory(ctx context.Context, category string) (int64, error) {
	ret := _m.Called(ctx, category)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *Repository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}
