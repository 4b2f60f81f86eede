package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"soustackgw/internal/canonical"
	"soustackgw/internal/domain"
	"soustackgw/internal/port"
	"soustackgw/internal/validator"
)

// PingOutput is the output of the ping tool.
type PingOutput struct {
	Pong bool `json:"pong"`
}

// MetaOutput is the output of ingest.meta.
type MetaOutput struct {
	Name      string              `json:"name"`
	Version   string              `json:"version"`
	Tools     []string            `json:"tools"`
	Providers domain.ProviderRefs `json:"providers"`
}

// SegmentOutput is the output of ingest.segment.
type SegmentOutput struct {
	Chunks []domain.SegmentChunk `json:"chunks"`
	Errors []string              `json:"errors"`
}

// ExtractOutput is the output of ingest.extract. Intermediate is null
// whenever Errors is non-empty.
type ExtractOutput struct {
	Intermediate *domain.IntermediateRecipe `json:"intermediate"`
	Errors       []string                   `json:"errors"`
}

// ToSoustackOutput is the output of ingest.toSoustack.
type ToSoustackOutput struct {
	Recipe map[string]any `json:"recipe"`
	Errors []string       `json:"errors"`
}

// IngestService runs the single-stage ingestion tools.
type IngestService interface {
	Ping(ctx context.Context) *PingOutput
	Meta(ctx context.Context, tools []string) *MetaOutput
	Segment(ctx context.Context, input map[string]any) (*SegmentOutput, error)
	Extract(ctx context.Context, input map[string]any) (*ExtractOutput, error)
	ToSoustack(ctx context.Context, input map[string]any) (*ToSoustackOutput, error)
	Validate(ctx context.Context, input map[string]any) (*domain.ValidationResult, error)
}

type ingestService struct {
	providers port.ProviderSource
	name      string
	version   string
	logger    *zap.Logger
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(providers port.ProviderSource, name, version string, logger *zap.Logger) IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ingestService{
		providers: providers,
		name:      name,
		version:   version,
		logger:    logger,
	}
}

func (s *ingestService) Ping(_ context.Context) *PingOutput {
	return &PingOutput{Pong: true}
}

func (s *ingestService) Meta(_ context.Context, tools []string) *MetaOutput {
	return &MetaOutput{
		Name:      s.name,
		Version:   s.version,
		Tools:     tools,
		Providers: s.providers.Refs(),
	}
}

func (s *ingestService) Segment(ctx context.Context, input map[string]any) (*SegmentOutput, error) {
	in, errs := validator.ValidateSegmentInput(input)
	if errs != nil {
		return &SegmentOutput{Chunks: []domain.SegmentChunk{}, Errors: errs}, nil
	}

	ingest, err := s.providers.Ingest(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := ingest.Segment(ctx, in.Text, in.Options)
	if err != nil {
		return nil, err
	}

	out := &SegmentOutput{Chunks: make([]domain.SegmentChunk, 0, len(raw)), Errors: []string{}}
	for i, c := range raw {
		chunk, chunkErrs := validator.ValidateSegmentChunk(c, fmt.Sprintf("chunks[%d]", i))
		if chunkErrs != nil {
			out.Errors = append(out.Errors, chunkErrs...)
			continue
		}
		out.Chunks = append(out.Chunks, *chunk)
	}
	if in.Options.MaxChunks != nil && len(out.Chunks) > *in.Options.MaxChunks {
		out.Chunks = out.Chunks[:*in.Options.MaxChunks]
	}
	return out, nil
}

func (s *ingestService) Extract(ctx context.Context, input map[string]any) (*ExtractOutput, error) {
	in, errs := validator.ValidateExtractInput(input)
	if errs != nil {
		return &ExtractOutput{Errors: errs}, nil
	}

	ingest, err := s.providers.Ingest(ctx)
	if err != nil {
		return nil, err
	}
	text, err := ingest.Normalize(ctx, in.Text)
	if err != nil {
		return nil, err
	}

	lines := SplitLines(text)
	if errs := validator.ValidateChunkBounds(in.Chunk, len(lines)); errs != nil {
		return &ExtractOutput{Errors: errs}, nil
	}

	raw, err := ingest.Extract(ctx, in.Chunk, lines)
	if err != nil {
		return nil, err
	}
	recipe, errs := validator.ValidateIntermediateRecipe(raw, "intermediate")
	if errs != nil {
		s.logger.Warn("extract stage returned an invalid intermediate recipe", zap.Strings("errors", errs))
		return &ExtractOutput{Errors: errs}, nil
	}
	return &ExtractOutput{Intermediate: recipe, Errors: []string{}}, nil
}

func (s *ingestService) ToSoustack(ctx context.Context, input map[string]any) (*ToSoustackOutput, error) {
	in, errs := validator.ValidateToSoustackInput(input)
	if errs != nil {
		return &ToSoustackOutput{Errors: errs}, nil
	}

	ingest, err := s.providers.Ingest(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := ingest.ToSoustack(ctx, in.Intermediate, in.Options)
	if err != nil {
		return nil, err
	}

	slug := canonical.EnsureSlug("", in.Intermediate.Title, in.Options.SourcePath)
	return &ToSoustackOutput{Recipe: canonical.Canonicalize(raw, slug), Errors: []string{}}, nil
}

func (s *ingestService) Validate(ctx context.Context, input map[string]any) (*domain.ValidationResult, error) {
	recipe, errs := validator.ValidateRecipeInput(input)
	if errs != nil {
		return &domain.ValidationResult{OK: false, Errors: errs}, nil
	}

	v, err := s.providers.Validator(ctx)
	if err != nil {
		return nil, err
	}
	res, err := v.Validate(ctx, recipe)
	if err != nil {
		return nil, err
	}
	out := &domain.ValidationResult{OK: res.OK, Errors: append([]string{}, res.Errors...)}
	sort.Strings(out.Errors)
	return out, nil
}

// SplitLines splits text into lines, accepting both \n and \r\n endings. A
// single trailing newline does not start an extra empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
