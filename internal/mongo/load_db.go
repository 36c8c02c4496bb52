package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/pkg/sequence"
)

const connectTimeout = 10 * time.Second

// LoadDB connects, pings the primary and returns the named database.
func LoadDB(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(dbName), nil
}

var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

func uniqueID() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

var indexes = map[string][]mongo.IndexModel{
	"users": {
		uniqueID(),
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	"products": {
		uniqueID(),
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	},
	"categories": {
		uniqueID(),
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive)},
	},
	"cart": {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}

// collections fixes the order indexes are created in.
var collections = []string{"users", "products", "categories", "cart"}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// SyncCounters raises every id counter to the current max id so documents
// inserted outside the API keep unique ids.
func SyncCounters(ctx context.Context, counters *sequence.MongoCounters, logger *slog.Logger) error {
	for _, name := range []string{sequence.Users, sequence.Products, sequence.Categories} {
		value, err := counters.Sync(ctx, name)
		if err != nil {
			return err
		}
		logger.Debug("counter synced", "counter", name, "value", value)
	}
	return nil
}
