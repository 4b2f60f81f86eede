package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"soustackgw/internal/canonical"
	"soustackgw/internal/domain"
	"soustackgw/internal/service"
	"soustackgw/mocks"
)

func intPtr(n int) *int { return &n }

func setupIngest() (service.IngestService, *mocks.MockProviderSource, *mocks.MockIngestProvider) {
	src := new(mocks.MockProviderSource)
	ingest := new(mocks.MockIngestProvider)
	return service.NewIngestService(src, "soustackgw", "1.2.3", nil), src, ingest
}

func TestIngestService_Ping(t *testing.T) {
	svc, _, _ := setupIngest()

	assert.True(t, svc.Ping(context.Background()).Pong)
}

func TestIngestService_Meta(t *testing.T) {
	svc, src, _ := setupIngest()
	refs := domain.ProviderRefs{Ingest: "@soustack/ingest", Validator: "@soustack/validator"}
	src.On("Refs").Return(refs)

	out := svc.Meta(context.Background(), []string{"ingest.meta", "ping"})

	assert.Equal(t, "soustackgw", out.Name)
	assert.Equal(t, "1.2.3", out.Version)
	assert.Equal(t, []string{"ingest.meta", "ping"}, out.Tools)
	assert.Equal(t, refs, out.Providers)
}

func TestIngestService_Segment_Success(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("Segment", mock.Anything, "text", domain.SegmentOptions{MaxChunks: intPtr(2)}).Return([]any{
		map[string]any{"startLine": float64(1), "endLine": float64(3), "titleGuess": "Soup", "confidence": 0.9},
		map[string]any{"startLine": float64(4), "endLine": float64(6)},
		map[string]any{"startLine": float64(7), "endLine": float64(9)},
	}, nil)

	out, err := svc.Segment(context.Background(), map[string]any{
		"text":    "text",
		"options": map[string]any{"maxChunks": float64(2)},
	})

	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	require.Len(t, out.Chunks, 2)
	assert.Equal(t, domain.SegmentChunk{StartLine: 1, EndLine: 3, TitleGuess: "Soup", Confidence: 0.9}, out.Chunks[0])
	assert.Equal(t, 0.0, out.Chunks[1].Confidence)
	ingest.AssertExpectations(t)
}

func TestIngestService_Segment_InvalidInput(t *testing.T) {
	svc, src, _ := setupIngest()

	out, err := svc.Segment(context.Background(), map[string]any{"text": 5})

	require.NoError(t, err)
	assert.Empty(t, out.Chunks)
	assert.NotNil(t, out.Chunks)
	assert.Equal(t, []string{"text must be a string"}, out.Errors)
	src.AssertNotCalled(t, "Ingest", mock.Anything)
}

func TestIngestService_Segment_DropsInvalidChunks(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("Segment", mock.Anything, "text", domain.SegmentOptions{}).Return([]any{
		map[string]any{"startLine": float64(5), "endLine": float64(2)},
		map[string]any{"startLine": float64(1), "endLine": float64(2)},
	}, nil)

	out, err := svc.Segment(context.Background(), map[string]any{"text": "text"})

	require.NoError(t, err)
	assert.Len(t, out.Chunks, 1)
	assert.Equal(t, []string{"chunks[0].startLine must be less than or equal to chunks[0].endLine"}, out.Errors)
}

func TestIngestService_Segment_ProviderUnavailable(t *testing.T) {
	svc, src, _ := setupIngest()
	src.On("Ingest", mock.Anything).Return(nil, domain.ErrProviderNotFound)

	_, err := svc.Segment(context.Background(), map[string]any{"text": "text"})

	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestIngestService_Extract_Success(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("Normalize", mock.Anything, "Soup\r\nwater\r\n").Return("Soup\nwater\n", nil)
	chunk := domain.ChunkRef{StartLine: 1, EndLine: 2}
	ingest.On("Extract", mock.Anything, chunk, []string{"Soup", "water"}).Return(map[string]any{
		"title":        "Soup",
		"ingredients":  []any{"water"},
		"instructions": []any{"boil"},
	}, nil)

	out, err := svc.Extract(context.Background(), map[string]any{
		"text":  "Soup\r\nwater\r\n",
		"chunk": map[string]any{"startLine": float64(1), "endLine": float64(2)},
	})

	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	require.NotNil(t, out.Intermediate)
	assert.Equal(t, "Soup", out.Intermediate.Title)
	assert.Equal(t, []string{"water"}, out.Intermediate.Ingredients)
	ingest.AssertExpectations(t)
}

func TestIngestService_Extract_StartAfterEnd(t *testing.T) {
	svc, _, _ := setupIngest()

	out, err := svc.Extract(context.Background(), map[string]any{
		"text":  "a\nb",
		"chunk": map[string]any{"startLine": float64(5), "endLine": float64(2)},
	})

	require.NoError(t, err)
	assert.Nil(t, out.Intermediate)
	assert.Contains(t, out.Errors, "chunk.startLine must be less than or equal to chunk.endLine")
}

func TestIngestService_Extract_ChunkBeyondText(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("Normalize", mock.Anything, "a\nb").Return("a\nb", nil)

	out, err := svc.Extract(context.Background(), map[string]any{
		"text":  "a\nb",
		"chunk": map[string]any{"startLine": float64(1), "endLine": float64(3)},
	})

	require.NoError(t, err)
	assert.Nil(t, out.Intermediate)
	assert.Equal(t, []string{"chunk.endLine (3) exceeds the number of lines in text (2)"}, out.Errors)
	ingest.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestService_Extract_InvalidProviderResult(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("Normalize", mock.Anything, "a").Return("a", nil)
	ingest.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(map[string]any{"title": ""}, nil)

	out, err := svc.Extract(context.Background(), map[string]any{
		"text":  "a",
		"chunk": map[string]any{"startLine": float64(1), "endLine": float64(1)},
	})

	require.NoError(t, err)
	assert.Nil(t, out.Intermediate)
	assert.Contains(t, out.Errors, "intermediate.title must not be empty")
}

func TestIngestService_Extract_ProviderError(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("Normalize", mock.Anything, "a").Return("", errors.New("normalize crashed"))

	_, err := svc.Extract(context.Background(), map[string]any{
		"text":  "a",
		"chunk": map[string]any{"startLine": float64(1), "endLine": float64(1)},
	})

	assert.EqualError(t, err, "normalize crashed")
}

func TestIngestService_ToSoustack(t *testing.T) {
	svc, src, ingest := setupIngest()
	src.On("Ingest", mock.Anything).Return(ingest, nil)
	ingest.On("ToSoustack", mock.Anything, mock.Anything, domain.ToSoustackOptions{SourcePath: "/x/soup.txt"}).
		Return(map[string]any{"name": "Tomato Soup", "$schema": "other"}, nil)

	out, err := svc.ToSoustack(context.Background(), map[string]any{
		"intermediate": map[string]any{
			"title":        "Tomato Soup",
			"ingredients":  []any{"tomato"},
			"instructions": []any{},
		},
		"options": map[string]any{"sourcePath": "/x/soup.txt"},
	})

	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	assert.Equal(t, map[string]any{
		"$schema": canonical.SchemaURI,
		"profile": canonical.DefaultProfile,
		"stacks":  map[string]any{"tomato-soup": true},
		"name":    "Tomato Soup",
	}, out.Recipe)
}

func TestIngestService_ToSoustack_InvalidInput(t *testing.T) {
	svc, _, _ := setupIngest()

	out, err := svc.ToSoustack(context.Background(), map[string]any{})

	require.NoError(t, err)
	assert.Nil(t, out.Recipe)
	assert.Equal(t, []string{"intermediate is required"}, out.Errors)
}

func TestIngestService_Validate(t *testing.T) {
	svc, src, _ := setupIngest()
	v := new(mocks.MockRecipeValidator)
	src.On("Validator", mock.Anything).Return(v, nil)
	recipe := map[string]any{"name": "x"}
	v.On("Validate", mock.Anything, recipe).Return(&domain.ValidationResult{OK: false, Errors: []string{"b", "a"}}, nil)

	out, err := svc.Validate(context.Background(), map[string]any{"recipe": recipe})

	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, []string{"a", "b"}, out.Errors)
}

func TestIngestService_Validate_InvalidInput(t *testing.T) {
	svc, _, _ := setupIngest()

	out, err := svc.Validate(context.Background(), map[string]any{"recipe": "nope"})

	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, []string{"recipe must be an object"}, out.Errors)
}

func TestIngestService_Validate_ValidatorUnavailable(t *testing.T) {
	svc, src, _ := setupIngest()
	src.On("Validator", mock.Anything).Return(nil, domain.ErrProviderNotFound)

	_, err := svc.Validate(context.Background(), map[string]any{"recipe": map[string]any{}})

	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{}, service.SplitLines(""))
	assert.Equal(t, []string{"a"}, service.SplitLines("a\n"))
	assert.Equal(t, []string{"a", "", "b"}, service.SplitLines("a\r\n\r\nb"))
}
