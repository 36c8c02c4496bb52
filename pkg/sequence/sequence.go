// Package sequence hands out integer ids from the counters collection.
package sequence

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	Users      = "users"
	Products   = "products"
	Categories = "categories"
)

type Generator interface {
	Next(ctx context.Context, name string) (int64, error)
}

type counter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"seq"`
}

type MongoCounters struct {
	collection *mongo.Collection
}

func NewMongoCounters(db *mongo.Database) *MongoCounters {
	return &MongoCounters{
		collection: db.Collection("counters"),
	}
}

// Next atomically increments the named counter and returns the new value.
func (c *MongoCounters) Next(ctx context.Context, name string) (int64, error) {
	var doc counter
	err := c.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Value, nil
}

// Sync raises the named counter to the highest id already stored in the
// collection of the same name.
func (c *MongoCounters) Sync(ctx context.Context, name string) (int64, error) {
	var top struct {
		ID int64 `bson:"id"`
	}
	err := c.collection.Database().Collection(name).FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.M{"id": 1}),
	).Decode(&top)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("find max %s id: %w", name, err)
	}

	var doc counter
	err = c.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": top.ID}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("sync %s counter: %w", name, err)
	}
	return doc.Value, nil
}
