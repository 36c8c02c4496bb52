package product

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const FeaturedMinRating = 4.5

var (
	ErrNotFound  = errors.New("product not found")
	ErrInvalidID = errors.New("invalid product ID")
)

// ParseID reads a product id from its URL form.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

type Image struct {
	ID        string `bson:"id" json:"id"`
	URL       string `bson:"url" json:"url"`
	Filename  string `bson:"filename" json:"filename"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
	Order     int    `bson:"order" json:"order"`
}

type Product struct {
	MongoID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          int64              `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Images      []Image            `bson:"images" json:"images"`
	ImageID     string             `bson:"imageId,omitempty" json:"imageId,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	Reviews     int                `bson:"reviews" json:"reviews"`
	Category    string             `bson:"category" json:"category"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Filter narrows Find. Zero values mean "no constraint".
type Filter struct {
	Category     string
	Search       string
	MinRating    float64
	ExcludeID    int64
	Limit        int64
	SortByRating bool
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Images      *[]Image `json:"images"`
	ImageID     *string  `json:"imageId"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews     *int     `json:"reviews" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"inStock"`
	Description *string  `json:"description"`
}

func (p Patch) fields(now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.ImageID != nil {
		set["imageId"] = *p.ImageID
	}
	if p.Images != nil {
		images := normalizeImages(*p.Images)
		set["images"] = images
		// the mirror fields follow the primary, empty when there is none
		primary, _ := primaryImage(images)
		set["image"] = primary.URL
		set["imageId"] = primary.ID
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.Reviews != nil {
		set["reviews"] = *p.Reviews
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.InStock != nil {
		set["inStock"] = *p.InStock
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return set
}

// normalizeImages orders images and leaves exactly one primary: the first
// one flagged, or the first image when none is.
func normalizeImages(images []Image) []Image {
	out := make([]Image, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})

	primary := -1
	for i := range out {
		if out[i].IsPrimary && primary == -1 {
			primary = i
			continue
		}
		out[i].IsPrimary = false
	}
	if primary == -1 && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out
}

func primaryImage(images []Image) (Image, bool) {
	for _, img := range images {
		if img.IsPrimary {
			return img, true
		}
	}
	return Image{}, false
}

// BlobIDs lists the stored image ids a product references.
func (p *Product) BlobIDs() []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(p.Images)+1)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	add(p.ImageID)
	for _, img := range p.Images {
		add(img.ID)
	}
	return ids
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	InsertMany(ctx context.Context, products []*Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	Find(ctx context.Context, f Filter) ([]*Product, error)
	Update(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) (*Product, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
