package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"storefront/pkg/generator"
	"storefront/pkg/validation"
)

const (
	DefaultMaxBytes = 5 << 20
	URLPrefix       = "/api/images/"

	msgNoFile   = "No file was uploaded"
	msgNotImage = "Only image files are allowed"
)

type ServiceImage interface {
	Save(ctx context.Context, original, contentType string, size int64, r io.Reader) (*Uploaded, error)
	Open(ctx context.Context, id string) (*Object, error)
	Delete(ctx context.Context, id string) error
}

// Uploaded is what the upload endpoint returns.
type Uploaded struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	ID       string `json:"id"`
	Type     string `json:"type"`
}

type ImageService struct {
	Store    Store
	MaxBytes int64

	now func() time.Time
}

func NewImageService(store Store, maxBytes int64) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ImageService{
		Store:    store,
		MaxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *ImageService) tooLarge() error {
	return validation.New("file", fmt.Sprintf("File too large. Maximum %dMB", s.MaxBytes>>20))
}

// Save checks the upload and stores it under a unique name.
func (s *ImageService) Save(ctx context.Context, original, contentType string, size int64, r io.Reader) (*Uploaded, error) {
	if r == nil {
		return nil, validation.New("file", msgNoFile)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, validation.New("file", msgNotImage)
	}
	if size > s.MaxBytes {
		return nil, s.tooLarge()
	}

	filename, err := generator.UniqueFilename(original, s.now())
	if err != nil {
		return nil, err
	}

	lr := &limitedReader{r: r, remaining: s.MaxBytes}
	info, err := s.Store.Upload(ctx, filename, contentType, lr)
	if lr.exceeded {
		if info != nil {
			_ = s.Store.Delete(ctx, info.ID)
		}
		return nil, s.tooLarge()
	}
	if err != nil {
		return nil, err
	}

	return &Uploaded{
		URL:      URLPrefix + info.ID,
		Filename: info.Filename,
		ID:       info.ID,
		Type:     s.Store.Name(),
	}, nil
}

func (s *ImageService) Open(ctx context.Context, id string) (*Object, error) {
	return s.Store.Open(ctx, id)
}

func (s *ImageService) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

// limitedReader fails once more than remaining bytes have been read.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		l.exceeded = true
		return 0, errTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true
		return n, errTooLarge
	}
	return n, err
}

var errTooLarge = errors.New("upload exceeds size limit")
