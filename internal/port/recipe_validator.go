package port

import (
	"context"

	"soustackgw/internal/domain"
)

// RecipeValidator checks a recipe against the schema owned by the validator provider.
type RecipeValidator interface {
	Validate(ctx context.Context, recipe map[string]any) (*domain.ValidationResult, error)
}
