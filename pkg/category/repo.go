package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("categories"),
	}
}

func (r *MongoRepo) List(ctx context.Context, activeOnly bool) ([]*Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := make([]*Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (r *MongoRepo) findOne(ctx context.Context, filter bson.M) (*Category, error) {
	var c Category
	err := r.collection.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id int64) (*Category, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoRepo) FindByName(ctx context.Context, name string, excludeID int64) (*Category, error) {
	filter := bson.M{
		"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
	if excludeID != 0 {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return r.findOne(ctx, filter)
}

func (r *MongoRepo) Create(ctx context.Context, c *Category) error {
	result, err := r.collection.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert category: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.MongoID = oid
	}
	return nil
}

func (r *MongoRepo) InsertMany(ctx context.Context, categories []*Category) error {
	if len(categories) == 0 {
		return nil
	}
	docs := make([]interface{}, len(categories))
	for i, c := range categories {
		docs[i] = c
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

func (r *MongoRepo) Update(ctx context.Context, c *Category) (*Category, error) {
	var updated Category
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": c.ID},
		bson.M{"$set": bson.M{
			"name":        c.Name,
			"description": c.Description,
			"isActive":    c.IsActive,
			"updatedAt":   c.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &updated, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}
