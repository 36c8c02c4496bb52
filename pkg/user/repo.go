package user

import (
	"context"
	"errors"
	"fmt"
	"time"

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
		collection: db.Collection("users"),
	}
}

func (r *MongoRepo) Create(ctx context.Context, user *User) error {
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.MongoID = oid
	}
	return nil
}

func (r *MongoRepo) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *MongoRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoRepo) List(ctx context.Context) ([]*User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*User, 0)
	for cursor.Next(ctx) {
		var u User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, &u)
	}
	return users, cursor.Err()
}

func (r *MongoRepo) SetRole(ctx context.Context, email, role string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// BackfillRoles gives every user without a role the default one.
func (r *MongoRepo) BackfillRoles(ctx context.Context) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"role": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"role": RoleUser}},
	)
	if err != nil {
		return 0, fmt.Errorf("backfill roles: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
