package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"storefront/pkg/blob"
)

// ServiceImage is a mock of blob.ServiceImage.
type ServiceImage struct {
	mock.Mock
}

func (_m *ServiceImage) Save(ctx context.Context, original, contentType string, size int64, r io.Reader) (*blob.Uploaded, error) {
	ret := _m.Called(ctx, original, contentType, size, r)
	var r0 *blob.Uploaded
	if v := ret.Get(0); v != nil {
		r0 = v.(*blob.Uploaded)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceImage) Open(ctx context.Context, id string) (*blob.Object, error) {
	ret := _m.Called(ctx, id)
	var r0 *blob.Object
	if v := ret.Get(0); v != nil {
		r0 = v.(*blob.Object)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceImage) Delete(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}
