package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"storefront/pkg/category"
	"storefront/pkg/category/mocks"
	"storefront/pkg/sequence"
	seqmocks "storefront/pkg/sequence/mocks"
	"storefront/pkg/validation"
)

type productCounter struct {
	mock.Mock
}

func (m *productCounter) CountByCategory(ctx context.Context, name string) (int64, error) {
	ret := m.Called(ctx, name)
	return ret.Get(0).(int64), ret.Error(1)
}

type fixture struct {
	repo     *mocks.Repository
	products *productCounter
	ids      *seqmocks.Generator
	svc      *category.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(mocks.Repository),
		products: new(productCounter),
		ids:      new(seqmocks.Generator),
	}
	f.svc = category.NewService(f.repo, f.products, f.ids)
	return f
}

var ctx = context.Background()

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByName", ctx, "Toys", int64(0)).Return(nil, category.ErrNotFound)
		f.ids.On("Next", ctx, sequence.Categories).Return(int64(6), nil)
		f.repo.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		c, err := f.svc.Create(ctx, category.Input{Name: " Toys ", Description: " fun "})

		require.NoError(t, err)
		assert.Equal(t, int64(6), c.ID)
		assert.Equal(t, "Toys", c.Name)
		assert.Equal(t, "fun", c.Description)
		assert.True(t, c.IsActive)
	})

	t.Run("name required", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, category.Input{Name: "  "})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Category name is required", verr.Message)
	})

	t.Run("already exists", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByName", ctx, "home", int64(0)).Return(&category.Category{ID: 2, Name: "Home"}, nil)

		_, err := f.svc.Create(ctx, category.Input{Name: "home"})

		assert.ErrorIs(t, err, category.ErrAlreadyExists)
	})

	t.Run("lookup error", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByName", ctx, "x", int64(0)).Return(nil, errors.New("down"))

		_, err := f.svc.Create(ctx, category.Input{Name: "x"})

		assert.EqualError(t, err, "down")
	})
}

func TestUpdate(t *testing.T) {
	t.Run("isActive defaults to true", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, int64(2)).Return(&category.Category{ID: 2, Name: "Home", IsActive: false}, nil)
		f.repo.On("FindByName", ctx, "House", int64(2)).Return(nil, category.ErrNotFound)
		f.repo.On("Update", ctx, mock.MatchedBy(func(c *category.Category) bool {
			return c.ID == 2 && c.Name == "House" && c.IsActive
		})).Return(&category.Category{ID: 2, Name: "House", IsActive: true}, nil)

		c, err := f.svc.Update(ctx, 2, category.Input{Name: "House"})

		require.NoError(t, err)
		assert.True(t, c.IsActive)
	})

	t.Run("explicit inactive", func(t *testing.T) {
		f := newFixture()
		inactive := false
		f.repo.On("FindByID", ctx, int64(2)).Return(&category.Category{ID: 2}, nil)
		f.repo.On("FindByName", ctx, "Home", int64(2)).Return(nil, category.ErrNotFound)
		f.repo.On("Update", ctx, mock.MatchedBy(func(c *category.Category) bool {
			return !c.IsActive
		})).Return(&category.Category{ID: 2}, nil)

		_, err := f.svc.Update(ctx, 2, category.Input{Name: "Home", IsActive: &inactive})

		assert.NoError(t, err)
	})

	t.Run("name taken", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, int64(2)).Return(&category.Category{ID: 2}, nil)
		f.repo.On("FindByName", ctx, "Beauty", int64(2)).Return(&category.Category{ID: 5}, nil)

		_, err := f.svc.Update(ctx, 2, category.Input{Name: "Beauty"})

		assert.ErrorIs(t, err, category.ErrNameTaken)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, int64(9)).Return(nil, category.ErrNotFound)

		_, err := f.svc.Update(ctx, 9, category.Input{Name: "X"})

		assert.ErrorIs(t, err, category.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("in use", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, int64(1)).Return(&category.Category{ID: 1, Name: "Electronics"}, nil)
		f.products.On("CountByCategory", ctx, "Electronics").Return(int64(4), nil)

		err := f.svc.Delete(ctx, 1)

		var inUse *category.InUseError
		require.ErrorAs(t, err, &inUse)
		assert.Equal(t, int64(4), inUse.Products)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, int64(1)).Return(&category.Category{ID: 1, Name: "Toys"}, nil)
		f.products.On("CountByCategory", ctx, "Toys").Return(int64(0), nil)
		f.repo.On("Delete", ctx, int64(1)).Return(nil)

		assert.NoError(t, f.svc.Delete(ctx, 1))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, int64(1)).Return(nil, category.ErrNotFound)

		assert.ErrorIs(t, f.svc.Delete(ctx, 1), category.ErrNotFound)
	})
}

func TestSeed(t *testing.T) {
	f := newFixture()
	f.repo.On("Count", ctx).Return(int64(0), nil)
	f.ids.On("Next", ctx, sequence.Categories).Return(int64(1), nil)
	f.repo.On("InsertMany", ctx, mock.MatchedBy(func(cs []*category.Category) bool {
		return len(cs) == 5 && cs[0].Name == "Electronics" && cs[4].IsActive
	})).Return(nil)

	n, err := f.svc.Seed(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestParseID(t *testing.T) {
	id, err := category.ParseID("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = category.ParseID("seven")
	assert.ErrorIs(t, err, category.ErrInvalidID)
}
