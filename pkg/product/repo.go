package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("products"),
		now:        time.Now,
	}
}

func (r *MongoRepo) Create(ctx context.Context, p *Product) error {
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("product %d already exists: %w", p.ID, err)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.MongoID = oid
	}
	return nil
}

func (r *MongoRepo) InsertMany(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func buildQuery(f Filter) bson.M {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"category": pattern},
		}
	}
	if f.MinRating > 0 {
		query["rating"] = bson.M{"$gte": f.MinRating}
	}
	if f.ExcludeID != 0 {
		query["id"] = bson.M{"$ne": f.ExcludeID}
	}
	return query
}

func (r *MongoRepo) Find(ctx context.Context, f Filter) ([]*Product, error) {
	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	if f.SortByRating {
		opts.SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "id", Value: 1}})
	}

	cursor, err := r.collection.Find(ctx, buildQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]*Product, 0)
	for cursor.Next(ctx) {
		var p Product
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, &p)
	}
	return products, cursor.Err()
}

func (r *MongoRepo) Update(ctx context.Context, id int64, patch Patch) (*Product, error) {
	var p Product
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": patch.fields(r.now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

// Delete removes the product and returns it as it was stored.
func (r *MongoRepo) Delete(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return &p, nil
}

func (r *MongoRepo) CountByCategory(ctx context.Context, category string) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *MongoRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
