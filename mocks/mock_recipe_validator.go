package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"soustackgw/internal/domain"
)

// MockRecipeValidator is a mock implementation of port.RecipeValidator.
type MockRecipeValidator struct {
	mock.Mock
}

func (m *MockRecipeValidator) Validate(ctx context.Context, recipe map[string]any) (*domain.ValidationResult, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}
