package cart

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("cart"),
		now:        time.Now,
	}
}

func lineFilter(userID, productID int64) bson.M {
	return bson.M{"userId": userID, "productId": productID}
}

func (r *MongoRepo) Items(ctx context.Context, userID int64) ([]*Item, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]*Item, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return items, nil
}

// Add increments the line's quantity, creating the line when missing.
func (r *MongoRepo) Add(ctx context.Context, userID, productID int64, quantity int) error {
	now := r.now().UTC()
	_, err := r.collection.UpdateOne(ctx,
		lineFilter(userID, productID),
		bson.M{
			"$inc":         bson.M{"quantity": quantity},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (r *MongoRepo) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	_, err := r.collection.UpdateOne(ctx,
		lineFilter(userID, productID),
		bson.M{"$set": bson.M{"quantity": quantity, "updatedAt": r.now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (r *MongoRepo) Remove(ctx context.Context, userID, productID int64) error {
	if _, err := r.collection.DeleteOne(ctx, lineFilter(userID, productID)); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (r *MongoRepo) Clear(ctx context.Context, userID int64) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
