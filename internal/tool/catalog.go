package tool

import (
	"context"

	"soustackgw/internal/domain"
	"soustackgw/internal/service"
)

// NewCatalog builds the registry holding every gateway tool.
func NewCatalog(ingest service.IngestService, documents service.DocumentService) *Registry {
	r := NewRegistry()

	r.MustRegister(&Tool{
		Name:        domain.ToolPing,
		Description: "Health check.",
		Handler: func(ctx context.Context, _ map[string]any) (any, error) {
			return ingest.Ping(ctx), nil
		},
	})
	r.MustRegister(&Tool{
		Name:        domain.ToolMeta,
		Description: "Gateway name, version, tools and provider references.",
		Handler: func(ctx context.Context, _ map[string]any) (any, error) {
			return ingest.Meta(ctx, r.Names()), nil
		},
	})
	r.MustRegister(&Tool{
		Name:        domain.ToolSegment,
		Description: "Split text into line ranges that likely hold one recipe each.",
		Handler: func(ctx context.Context, input map[string]any) (any, error) {
			return ingest.Segment(ctx, input)
		},
	})
	r.MustRegister(&Tool{
		Name:        domain.ToolExtract,
		Description: "Extract an intermediate recipe from a chunk of text.",
		Handler: func(ctx context.Context, input map[string]any) (any, error) {
			return ingest.Extract(ctx, input)
		},
	})
	r.MustRegister(&Tool{
		Name:        domain.ToolToSoustack,
		Description: "Convert an intermediate recipe into a canonical Soustack recipe.",
		Handler: func(ctx context.Context, input map[string]any) (any, error) {
			return ingest.ToSoustack(ctx, input)
		},
	})
	r.MustRegister(&Tool{
		Name:        domain.ToolValidate,
		Description: "Validate a Soustack recipe.",
		Handler: func(ctx context.Context, input map[string]any) (any, error) {
			return ingest.Validate(ctx, input)
		},
	})
	r.MustRegister(&Tool{
		Name:        domain.ToolDocument,
		Description: "Ingest a whole document, canonicalize and validate its recipes.",
		Handler: func(ctx context.Context, input map[string]any) (any, error) {
			return documents.Ingest(ctx, input)
		},
	})

	return r
}
