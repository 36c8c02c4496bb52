package category

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrAlreadyExists = errors.New("category already exists")
	ErrNameTaken     = errors.New("category name already exists")
	ErrInvalidID     = errors.New("invalid category ID")
)

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// InUseError is returned when products still reference a category.
type InUseError struct {
	Products int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("category is used by %d products", e.Products)
}

type Category struct {
	MongoID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          int64              `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	FindByID(ctx context.Context, id int64) (*Category, error)
	// FindByName matches case-insensitively, skipping excludeID when non-zero.
	FindByName(ctx context.Context, name string, excludeID int64) (*Category, error)
	Create(ctx context.Context, c *Category) error
	InsertMany(ctx context.Context, categories []*Category) error
	Update(ctx context.Context, c *Category) (*Category, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
