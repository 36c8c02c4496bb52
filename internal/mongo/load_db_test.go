package mongo

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront/pkg/sequence"
)

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates every index set", func(mt *mtest.T) {
		for range collections {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}

		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("stops on first failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Message: "index options conflict",
		}))

		err := EnsureIndexes(context.Background(), mt.DB)

		assert.ErrorContains(mt, err, "create users indexes")
	})
}

func TestSyncCounters(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mt.Run("syncs each counter", func(mt *mtest.T) {
		for _, name := range []string{sequence.Users, sequence.Products, sequence.Categories} {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(0, "foo."+name, mtest.FirstBatch, bson.D{{Key: "id", Value: int64(3)}}),
				bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{{Key: "_id", Value: name}, {Key: "seq", Value: int64(3)}}}},
			)
		}

		assert.NoError(mt, SyncCounters(context.Background(), sequence.NewMongoCounters(mt.DB), logger))
	})

	mt.Run("propagates errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom"}))

		assert.Error(mt, SyncCounters(context.Background(), sequence.NewMongoCounters(mt.DB), logger))
	})
}
