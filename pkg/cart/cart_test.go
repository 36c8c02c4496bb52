package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"storefront/pkg/cart"
	"storefront/pkg/cart/mocks"
	"storefront/pkg/product"
	productmocks "storefront/pkg/product/mocks"
	"storefront/pkg/validation"
)

var ctx = context.Background()

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		lines []cart.Line
		total float64
		count int
	}{
		{"empty", nil, 0, 0},
		{
			"sums price times quantity",
			[]cart.Line{
				{ProductID: 1, Quantity: 2, Product: &product.Product{Price: 10.10}},
				{ProductID: 2, Quantity: 1, Product: &product.Product{Price: 0.2}},
			},
			20.4, 3,
		},
		{
			"skips missing products",
			[]cart.Line{
				{ProductID: 1, Quantity: 3, Product: nil},
				{ProductID: 2, Quantity: 1, Product: &product.Product{Price: 5}},
			},
			5, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cart.Summarize(tt.lines)

			assert.InDelta(t, tt.total, s.Total, 0.0001)
			assert.Equal(t, tt.count, s.ItemCount)
			assert.NotNil(t, s.Items)
		})
	}
}

func newService() (*cart.Service, *mocks.Repository, *productmocks.Repository) {
	repo := new(mocks.Repository)
	products := new(productmocks.Repository)
	return cart.NewService(repo, products), repo, products
}

func TestService_Get(t *testing.T) {
	t.Run("joins products", func(t *testing.T) {
		svc, repo, products := newService()
		repo.On("Items", ctx, int64(1)).Return([]*cart.Item{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		}, nil)
		products.On("FindByID", ctx, int64(10)).Return(&product.Product{ID: 10, Price: 3}, nil)
		products.On("FindByID", ctx, int64(11)).Return(nil, product.ErrNotFound)

		s, err := svc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Len(t, s.Items, 2)
		assert.Nil(t, s.Items[1].Product)
		assert.Equal(t, 6.0, s.Total)
		assert.Equal(t, 2, s.ItemCount)
	})

	t.Run("product lookup error", func(t *testing.T) {
		svc, repo, products := newService()
		repo.On("Items", ctx, int64(1)).Return([]*cart.Item{{ProductID: 10, Quantity: 1}}, nil)
		products.On("FindByID", ctx, int64(10)).Return(nil, errors.New("down"))

		_, err := svc.Get(ctx, 1)

		assert.EqualError(t, err, "down")
	})
}

func TestService_Add(t *testing.T) {
	t.Run("adds quantity", func(t *testing.T) {
		svc, repo, products := newService()
		products.On("FindByID", ctx, int64(10)).Return(&product.Product{ID: 10}, nil)
		repo.On("Add", ctx, int64(1), int64(10), 3).Return(nil)

		assert.NoError(t, svc.Add(ctx, 1, 10, 3))
		repo.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, repo, products := newService()
		products.On("FindByID", ctx, int64(10)).Return(nil, product.ErrNotFound)

		assert.ErrorIs(t, svc.Add(ctx, 1, 10, 2), product.ErrNotFound)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _, _ := newService()
		var verr *validation.Error

		require.ErrorAs(t, svc.Add(ctx, 1, 0, 1), &verr)
		assert.Equal(t, "Product ID is required", verr.Message)

		for _, q := range []int{0, -2} {
			require.ErrorAs(t, svc.Add(ctx, 1, 5, q), &verr)
			assert.Equal(t, "Quantity must be positive", verr.Message)
		}
	})
}

func TestService_Update(t *testing.T) {
	qty := func(n int) *int { return &n }

	t.Run("sets quantity", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("SetQuantity", ctx, int64(1), int64(10), 4).Return(nil)

		assert.NoError(t, svc.Update(ctx, 1, 10, qty(4)))
	})

	t.Run("zero removes", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("Remove", ctx, int64(1), int64(10)).Return(nil)

		assert.NoError(t, svc.Update(ctx, 1, 10, qty(0)))
		repo.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("quantity required", func(t *testing.T) {
		svc, _, _ := newService()
		var verr *validation.Error

		require.ErrorAs(t, svc.Update(ctx, 1, 10, nil), &verr)
		assert.Equal(t, "Product ID and quantity are required", verr.Message)
	})
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("items", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "foo.cart", mtest.FirstBatch,
			bson.D{{Key: "userId", Value: int64(1)}, {Key: "productId", Value: int64(3)}, {Key: "quantity", Value: 2}},
		))
		repo := cart.NewMongoRepo(mt.DB)

		items, err := repo.Items(ctx, 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	mt.Run("add upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := cart.NewMongoRepo(mt.DB)

		assert.NoError(t, repo.Add(ctx, 1, 3, 1))
	})

	mt.Run("clear", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))
		repo := cart.NewMongoRepo(mt.DB)

		assert.NoError(t, repo.Clear(ctx, 1))
	})

	mt.Run("remove error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "x"}))
		repo := cart.NewMongoRepo(mt.DB)

		assert.ErrorContains(t, repo.Remove(ctx, 1, 3), "remove cart item")
	})
}
