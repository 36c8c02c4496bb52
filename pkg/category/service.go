package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/pkg/sequence"
	"storefront/pkg/validation"
)

const msgNameRequired = "Category name is required"

type ServiceCategory interface {
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, in Input) (*Category, error)
	Update(ctx context.Context, id int64, in Input) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductCounter reports how many products reference a category name.
type ProductCounter interface {
	CountByCategory(ctx context.Context, category string) (int64, error)
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type Service struct {
	Repo     Repository
	Products ProductCounter
	IDs      sequence.Generator

	now func() time.Time
}

func NewService(repo Repository, products ProductCounter, ids sequence.Generator) *Service {
	return &Service{
		Repo:     repo,
		Products: products,
		IDs:      ids,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Category, error) {
	return s.Repo.List(ctx, activeOnly)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Category, error) {
	return s.Repo.FindByID(ctx, id)
}

// nameFree reports whether no other category already uses name.
func (s *Service) nameFree(ctx context.Context, name string, excludeID int64) (bool, error) {
	_, err := s.Repo.FindByName(ctx, name, excludeID)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	return false, err
}

func (s *Service) Create(ctx context.Context, in Input) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation.New("Name", msgNameRequired)
	}

	free, err := s.nameFree(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrAlreadyExists
	}

	id, err := s.IDs.Next(ctx, sequence.Categories)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &Category{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces name and description. IsActive defaults to true when the
// request leaves it out.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation.New("Name", msgNameRequired)
	}

	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	free, err := s.nameFree(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrNameTaken
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return s.Repo.Update(ctx, &Category{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsActive:    active,
		UpdatedAt:   s.now().UTC(),
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.Products.CountByCategory(ctx, c.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return &InUseError{Products: n}
	}

	return s.Repo.Delete(ctx, id)
}

var defaultCategories = []Category{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Home", Description: "Home and kitchen appliances"},
	{Name: "Fashion", Description: "Clothing, shoes and accessories"},
	{Name: "Fitness", Description: "Sports and fitness equipment"},
	{Name: "Beauty", Description: "Beauty and personal care products"},
}

// Seed inserts the default categories when none exist.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	now := s.now().UTC()
	categories := make([]*Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		id, err := s.IDs.Next(ctx, sequence.Categories)
		if err != nil {
			return 0, err
		}
		c := d
		c.ID = id
		c.IsActive = true
		c.CreatedAt = now
		c.UpdatedAt = now
		categories = append(categories, &c)
	}

	if err := s.Repo.InsertMany(ctx, categories); err != nil {
		return 0, err
	}
	return len(categories), nil
}
