package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Generator is a mock of sequence.Generator.
type Generator struct {
	mock.Mock
}

func (_m *Generator) Next(ctx context.Context, name string) (int64, error) {
	ret := _m.Called(ctx, name)
	if rf, ok := ret.Get(0).(func(context.Context, string) int64); ok {
		return rf(ctx, name), ret.Error(1)
	}
	return ret.Get(0).(int64), ret.Error(1)
}
