package port

import (
	"context"

	"soustackgw/internal/domain"
)

// ProviderSource resolves the configured providers. Implementations resolve on
// every call and must be safe for concurrent use.
type ProviderSource interface {
	Ingest(ctx context.Context) (IngestProvider, error)
	Validator(ctx context.Context) (RecipeValidator, error)
	Refs() domain.ProviderRefs
}
