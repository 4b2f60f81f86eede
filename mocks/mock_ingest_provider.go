package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"soustackgw/internal/domain"
)

// MockIngestProvider is a mock implementation of port.IngestProvider.
type MockIngestProvider struct {
	mock.Mock
}

func (m *MockIngestProvider) Normalize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockIngestProvider) Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]any, error) {
	args := m.Called(ctx, text, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockIngestProvider) Extract(ctx context.Context, chunk domain.ChunkRef, lines []string) (any, error) {
	args := m.Called(ctx, chunk, lines)
	return args.Get(0), args.Error(1)
}

func (m *MockIngestProvider) ToSoustack(ctx context.Context, in domain.IntermediateRecipe, opts domain.ToSoustackOptions) (any, error) {
	args := m.Called(ctx, in, opts)
	return args.Get(0), args.Error(1)
}

func (m *MockIngestProvider) IngestDocument(ctx context.Context, req domain.IngestRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
