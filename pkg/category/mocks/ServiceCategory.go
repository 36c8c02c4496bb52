package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/category"
)

// ServiceCategory is a mock of category.ServiceCategory.
type ServiceCategory struct {
	mock.Mock
}

func (_m *ServiceCategory) List(ctx context.Context, activeOnly bool) ([]*category.Category, error) {
	ret := _m.Called(ctx, activeOnly)
	return categoriesOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceCategory) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	ret := _m.Called(ctx, id)
	return categoryOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceCategory) Create(ctx context.Context, in category.Input) (*category.Category, error) {
	ret := _m.Called(ctx, in)
	return categoryOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceCategory) Update(ctx context.Context, id int64, in category.Input) (*category.Category, error) {
	ret := _m.Called(ctx, id, in)
	return categoryOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *ServiceCategory) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}
