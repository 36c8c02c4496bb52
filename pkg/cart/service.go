package cart

import (
	"context"
	"errors"

	"storefront/pkg/product"
	"storefront/pkg/validation"
)

const (
	msgProductRequired     = "Product ID is required"
	msgQuantityRequired    = "Product ID and quantity are required"
	msgQuantityNotPositive = "Quantity must be positive"
)

type ServiceCart interface {
	Get(ctx context.Context, userID int64) (*Summary, error)
	Add(ctx context.Context, userID, productID int64, quantity int) error
	Update(ctx context.Context, userID, productID int64, quantity *int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

// ProductFinder looks products up by id.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*product.Product, error)
}

type Service struct {
	Repo     Repository
	Products ProductFinder
}

func NewService(repo Repository, products ProductFinder) *Service {
	return &Service{Repo: repo, Products: products}
}

func (s *Service) Get(ctx context.Context, userID int64) (*Summary, error) {
	items, err := s.Repo.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		p, err := s.Products.FindByID(ctx, it.ProductID)
		if err != nil && !errors.Is(err, product.ErrNotFound) {
			return nil, err
		}
		lines = append(lines, Line{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Product:   p,
		})
	}
	return Summarize(lines), nil
}

// Add puts quantity more of a product into the cart.
func (s *Service) Add(ctx context.Context, userID, productID int64, quantity int) error {
	if productID <= 0 {
		return validation.New("ProductID", msgProductRequired)
	}
	if quantity <= 0 {
		return validation.New("Quantity", msgQuantityNotPositive)
	}

	if _, err := s.Products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.Repo.Add(ctx, userID, productID, quantity)
}

// Update sets the quantity of a line. A quantity of zero or less removes it.
func (s *Service) Update(ctx context.Context, userID, productID int64, quantity *int) error {
	if productID <= 0 || quantity == nil {
		return validation.New("Quantity", msgQuantityRequired)
	}
	if *quantity <= 0 {
		return s.Repo.Remove(ctx, userID, productID)
	}
	return s.Repo.SetQuantity(ctx, userID, productID, *quantity)
}

func (s *Service) Remove(ctx context.Context, userID, productID int64) error {
	return s.Repo.Remove(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.Repo.Clear(ctx, userID)
}
