package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"soustackgw/internal/domain"
	"soustackgw/internal/port"
)

// MockProviderSource is a mock implementation of port.ProviderSource.
type MockProviderSource struct {
	mock.Mock
}

func (m *MockProviderSource) Ingest(ctx context.Context) (port.IngestProvider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.IngestProvider), args.Error(1)
}

func (m *MockProviderSource) Validator(ctx context.Context) (port.RecipeValidator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.RecipeValidator), args.Error(1)
}

func (m *MockProviderSource) Refs() domain.ProviderRefs {
	args := m.Called()
	return args.Get(0).(domain.ProviderRefs)
}
