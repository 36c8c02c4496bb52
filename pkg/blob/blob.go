// Package blob stores uploaded images. GridFSStore keeps them in MongoDB next
// to the catalog; MinioStore puts them in an S3 bucket.
package blob

import (
	"context"
	"errors"
	"io"
)

const DefaultContentType = "image/jpeg"

var (
	ErrNotFound  = errors.New("image not found")
	ErrInvalidID = errors.New("invalid image id")
)

type FileInfo struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Object is an open blob. Callers must close Body.
type Object struct {
	FileInfo
	Body io.ReadCloser
}

type Store interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (*FileInfo, error)
	Open(ctx context.Context, id string) (*Object, error)
	Delete(ctx context.Context, id string) error
	// Name identifies the backend in upload responses.
	Name() string
}
