package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"storefront/pkg/validation"
)

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantSecure   bool
		wantErr      bool
	}{
		{"minio:9000", "minio:9000", false, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://minio:9000", "minio:9000", true, false},
		{"http://minio:9000/", "minio:9000", false, false},
		{"http://minio:9000/foo", "", false, true},
		{"http://", "", false, true},
		{"", "", false, true},
	}

	for _, tt := range tests {
		ep, secure, err := normaliseEndpoint(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.wantEndpoint, ep, tt.in)
		assert.Equal(t, tt.wantSecure, secure, tt.in)
	}
}

func TestNewMinioStore_Incomplete(t *testing.T) {
	_, err := NewMinioStore(context.Background(), MinioConfig{Endpoint: "minio:9000"})
	assert.EqualError(t, err, "minio configuration incomplete")
}

func TestMinioStore_InvalidID(t *testing.T) {
	s := &MinioStore{bucket: "images"}

	_, err := s.Open(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, s.Delete(context.Background(), "../etc"), ErrInvalidID)
}

func TestMetadataContentType(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "contentType", Value: "image/png"}})
	require.NoError(t, err)
	other, err := bson.Marshal(bson.D{{Key: "owner", Value: "x"}})
	require.NoError(t, err)

	assert.Equal(t, "image/png", metadataContentType(raw))
	assert.Equal(t, DefaultContentType, metadataContentType(other))
	assert.Equal(t, DefaultContentType, metadataContentType(nil))
}

func TestGridFSStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("invalid id", func(mt *mtest.T) {
		s, err := NewGridFSStore(mt.DB, "")
		require.NoError(t, err)

		_, err = s.Open(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrInvalidID)
		assert.Equal(t, "gridfs", s.Name())
	})

	mt.Run("open missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "foo.images.files", mtest.FirstBatch))
		s, err := NewGridFSStore(mt.DB, "images")
		require.NoError(t, err)

		_, err = s.Open(ctx, primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("open empty file", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "foo.images.files", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "length", Value: int64(0)},
			{Key: "chunkSize", Value: int32(255 * 1024)},
			{Key: "filename", Value: "1-abc.png"},
			{Key: "metadata", Value: bson.D{{Key: "contentType", Value: "image/png"}}},
		}))
		s, err := NewGridFSStore(mt.DB, "images")
		require.NoError(t, err)

		obj, err := s.Open(ctx, oid.Hex())

		require.NoError(t, err)
		defer obj.Body.Close()
		assert.Equal(t, "1-abc.png", obj.Filename)
		assert.Equal(t, "image/png", obj.ContentType)
		data, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		s, err := NewGridFSStore(mt.DB, "images")
		require.NoError(t, err)

		assert.ErrorIs(t, s.Delete(ctx, primitive.NewObjectID().Hex()), ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
		)
		s, err := NewGridFSStore(mt.DB, "images")
		require.NoError(t, err)

		assert.NoError(t, s.Delete(ctx, primitive.NewObjectID().Hex()))
	})
}

type memoryStore struct {
	files   map[string][]byte
	deleted []string
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (m *memoryStore) Name() string { return "memory" }

func (m *memoryStore) Upload(_ context.Context, filename, contentType string, r io.Reader) (*FileInfo, error) {
	data, err := io.ReadAll(r)
	id := "id-" + filename
	if err != nil {
		return &FileInfo{ID: id}, err
	}
	if m.err != nil {
		return nil, m.err
	}
	m.files[id] = data
	return &FileInfo{ID: id, Filename: filename, ContentType: contentType, Size: int64(len(data))}, nil
}

func (m *memoryStore) Open(_ context.Context, id string) (*Object, error) {
	data, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{FileInfo: FileInfo{ID: id}, Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.files, id)
	return nil
}

func TestImageService_Save(t *testing.T) {
	ctx := context.Background()

	messageOf := func(t *testing.T, err error) string {
		t.Helper()
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		return verr.Message
	}

	t.Run("success", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewImageService(store, 0)

		up, err := svc.Save(ctx, "Photo.PNG", "image/png", 3, strings.NewReader("abc"))

		require.NoError(t, err)
		assert.Regexp(t, `^\d+-[0-9a-z]{6}\.png$`, up.Filename)
		assert.Equal(t, URLPrefix+up.ID, up.URL)
		assert.Equal(t, "memory", up.Type)
		assert.Equal(t, int64(DefaultMaxBytes), svc.MaxBytes)
	})

	t.Run("rejects", func(t *testing.T) {
		svc := NewImageService(newMemoryStore(), 1<<20)

		_, err := svc.Save(ctx, "a.txt", "text/plain", 1, strings.NewReader("x"))
		assert.Equal(t, "Only image files are allowed", messageOf(t, err))

		_, err = svc.Save(ctx, "a.png", "image/png", 2<<20, strings.NewReader("x"))
		assert.Equal(t, "File too large. Maximum 1MB", messageOf(t, err))

		_, err = svc.Save(ctx, "a.png", "image/png", 0, nil)
		assert.Equal(t, "No file was uploaded", messageOf(t, err))
	})

	t.Run("body larger than declared", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewImageService(store, 1<<20)

		_, err := svc.Save(ctx, "a.png", "image/png", 10, bytes.NewReader(make([]byte, 1<<20+1)))

		assert.Equal(t, "File too large. Maximum 1MB", messageOf(t, err))
		assert.Len(t, store.deleted, 1)
		assert.Empty(t, store.files)
	})

	t.Run("store error", func(t *testing.T) {
		store := newMemoryStore()
		store.err = errors.New("disk full")
		svc := NewImageService(store, 0)

		_, err := svc.Save(ctx, "a.png", "image/png", 1, strings.NewReader("x"))

		assert.EqualError(t, err, "disk full")
	})
}
