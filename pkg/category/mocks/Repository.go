package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/category"
)

// Repository is a mock of category.Repository.
type Repository struct {
	mock.Mock
}

func categoryOrNil(v interface{}) *category.Category {
	if v == nil {
		return nil
	}
	return v.(*category.Category)
}

func categoriesOrNil(v interface{}) []*category.Category {
	if v == nil {
		return nil
	}
	return v.([]*category.Category)
}

func (_m *Repository) List(ctx context.Context, activeOnly bool) ([]*category.Category, error) {
	ret := _m.Called(ctx, activeOnly)
	return categoriesOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) FindByID(ctx context.Context, id int64) (*category.Category, error) {
	ret := _m.Called(ctx, id)
	return categoryOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) FindByName(ctx context.Context, name string, excludeID int64) (*category.Category, error) {
	ret := _m.Called(ctx, name, excludeID)
	return categoryOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) Create(ctx context.Context, c *category.Category) error {
	return _m.Called(ctx, c).Error(0)
}

func (_m *Repository) InsertMany(ctx context.Context, categories []*category.Category) error {
	return _m.Called(ctx, categories).Error(0)
}

func (_m *Repository) Update(ctx context.Context, c *category.Category) (*category.Category, error) {
	ret := _m.Called(ctx, c)
	return categoryOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *Repository) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *Repository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}
