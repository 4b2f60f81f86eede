package port

import (
	"context"

	"soustackgw/internal/domain"
)

// IngestProvider is the capability set the gateway needs from an ingest provider.
// Results are plain JSON-shaped values (maps, slices, strings, numbers, bools).
type IngestProvider interface {
	Normalize(ctx context.Context, text string) (string, error)
	Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]any, error)
	Extract(ctx context.Context, chunk domain.ChunkRef, lines []string) (any, error)
	ToSoustack(ctx context.Context, in domain.IntermediateRecipe, opts domain.ToSoustackOptions) (any, error)
	IngestDocument(ctx context.Context, req domain.IngestRequest) (map[string]any, error)
}
