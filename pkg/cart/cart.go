// Package cart keeps per-user cart lines and prices them against the catalog.
package cart

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"storefront/pkg/product"
)

type Item struct {
	MongoID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    int64              `bson:"userId" json:"-"`
	ProductID int64              `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Line struct {
	ProductID int64            `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *product.Product `json:"product"`
}

type Summary struct {
	Items     []Line  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// Summarize totals the lines whose product still exists. Lines without a
// product are kept in Items but do not count.
func Summarize(lines []Line) *Summary {
	s := &Summary{Items: lines}
	if s.Items == nil {
		s.Items = []Line{}
	}
	for _, l := range lines {
		if l.Product == nil {
			continue
		}
		s.Total += l.Product.Price * float64(l.Quantity)
		s.ItemCount += l.Quantity
	}
	s.Total = math.Round(s.Total*100) / 100
	return s
}

type Repository interface {
	Items(ctx context.Context, userID int64) ([]*Item, error)
	Add(ctx context.Context, userID, productID int64, quantity int) error
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}
