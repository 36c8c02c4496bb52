package product

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/pkg/sequence"
	"storefront/pkg/validation"
)

const (
	DefaultFeaturedLimit = 6
	DefaultRelatedLimit  = 4

	categoryAll = "All"
)

type ServiceProduct interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Featured(ctx context.Context, limit int64) ([]*Product, error)
	Related(ctx context.Context, id int64, limit int64) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, in Input) (*Product, error)
	Update(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// ImageRemover deletes stored images by id.
type ImageRemover interface {
	Delete(ctx context.Context, id string) error
}

type ListOptions struct {
	Category string
	Search   string
	Limit    int64
}

type Input struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Images      []Image `json:"images"`
	ImageID     string  `json:"imageId"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int     `json:"reviews" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	InStock     bool    `json:"inStock"`
	Description string  `json:"description"`
}

var messages = validation.Messages{
	"Name":     "Product name is required",
	"Price":    "Price must be a non-negative number",
	"Rating":   "Rating must be between 0 and 5",
	"Reviews":  "Reviews must be a non-negative number",
	"Category": "Category is required",
}

type Service struct {
	Repo   Repository
	IDs    sequence.Generator
	Images ImageRemover
	Logger *slog.Logger

	now func() time.Time
}

func NewService(repo Repository, ids sequence.Generator, images ImageRemover, logger *slog.Logger) *Service {
	return &Service{
		Repo:   repo,
		IDs:    ids,
		Images: images,
		Logger: logger,
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	category := strings.TrimSpace(opts.Category)
	if strings.EqualFold(category, categoryAll) {
		category = ""
	}
	return s.Repo.Find(ctx, Filter{
		Category: category,
		Search:   strings.TrimSpace(opts.Search),
		Limit:    max(opts.Limit, 0),
	})
}

func (s *Service) Featured(ctx context.Context, limit int64) ([]*Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return s.Repo.Find(ctx, Filter{
		MinRating:    FeaturedMinRating,
		Limit:        limit,
		SortByRating: true,
	})
}

// Related returns other products of the same category.
func (s *Service) Related(ctx context.Context, id int64, limit int64) ([]*Product, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return s.Repo.Find(ctx, Filter{
		Category:  p.Category,
		ExcludeID: p.ID,
		Limit:     limit,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validation.Check(in, messages); err != nil {
		return nil, err
	}

	id, err := s.IDs.Next(ctx, sequence.Products)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := &Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Image:       in.Image,
		Images:      normalizeImages(in.Images),
		ImageID:     in.ImageID,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
		Category:    in.Category,
		InStock:     in.InStock,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if primary, ok := primaryImage(p.Images); ok {
		p.Image = primary.URL
		p.ImageID = primary.ID
	} else if in.Images != nil {
		// an explicit empty list leaves no stored blob to point at
		p.ImageID = ""
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Product, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validation.New("Name", messages["Name"])
		}
		patch.Name = &name
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, validation.New("Category", messages["Category"])
		}
		patch.Category = &category
	}
	if err := validation.Check(patch, messages); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, patch)
}

// Delete removes the product, then its stored images. Image failures are
// logged and do not fail the call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.Images == nil {
		return nil
	}

	for _, imageID := range p.BlobIDs() {
		if err := s.Images.Delete(ctx, imageID); err != nil {
			s.Logger.Warn("failed to delete product image",
				"product_id", id,
				"image_id", imageID,
				"error", err,
			)
		}
	}
	return nil
}

// Seed inserts the default catalog when the collection is empty. It returns
// how many products were inserted.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	now := s.now().UTC()
	products := make([]*Product, 0, len(defaultProducts))
	for _, d := range defaultProducts {
		id, err := s.IDs.Next(ctx, sequence.Products)
		if err != nil {
			return 0, err
		}
		p := d
		p.ID = id
		p.Image = placeholderImage
		p.Images = []Image{}
		p.CreatedAt = now
		p.UpdatedAt = now
		products = append(products, &p)
	}

	if err := s.Repo.InsertMany(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
