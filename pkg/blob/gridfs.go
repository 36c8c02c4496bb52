package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultBucket = "images"

type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(db *mongo.Database, bucketName string) (*GridFSStore, error) {
	if bucketName == "" {
		bucketName = DefaultBucket
	}
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

func (s *GridFSStore) Name() string {
	return "gridfs"
}

func (s *GridFSStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (*FileInfo, error) {
	if contentType == "" {
		contentType = DefaultContentType
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	us, err := s.bucket.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("open upload stream: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = us.SetWriteDeadline(deadline)
	}

	n, err := io.Copy(us, r)
	if err != nil {
		_ = us.Abort()
		return nil, fmt.Errorf("write gridfs file: %w", err)
	}
	if err := us.Close(); err != nil {
		return nil, fmt.Errorf("close gridfs file: %w", err)
	}

	oid, ok := us.FileID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected gridfs file id type")
	}

	return &FileInfo{
		ID:          oid.Hex(),
		Filename:    filename,
		ContentType: contentType,
		Size:        n,
	}, nil
}

func (s *GridFSStore) Open(ctx context.Context, id string) (*Object, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ds, err := s.bucket.OpenDownloadStream(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open gridfs file: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = ds.SetReadDeadline(deadline)
	}

	file := ds.GetFile()
	return &Object{
		FileInfo: FileInfo{
			ID:          id,
			Filename:    file.Name,
			ContentType: metadataContentType(file.Metadata),
			Size:        file.Length,
		},
		Body: ds,
	}, nil
}

func metadataContentType(metadata bson.Raw) string {
	if len(metadata) == 0 {
		return DefaultContentType
	}
	v, err := metadata.LookupErr("contentType")
	if err != nil {
		return DefaultContentType
	}
	if ct, ok := v.StringValueOK(); ok && ct != "" {
		return ct
	}
	return DefaultContentType
}

func (s *GridFSStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	err = s.bucket.DeleteContext(ctx, oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete gridfs file: %w", err)
	}
	return nil
}
