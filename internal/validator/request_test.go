package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soustackgw/internal/validator"
)

func TestValidateSegmentInput(t *testing.T) {
	in, errs := validator.ValidateSegmentInput(map[string]any{
		"text":    "line one\nline two",
		"options": map[string]any{"maxChunks": 3.0},
	})

	require.Empty(t, errs)
	require.NotNil(t, in)
	assert.Equal(t, "line one\nline two", in.Text)
	require.NotNil(t, in.Options.MaxChunks)
	assert.Equal(t, 3, *in.Options.MaxChunks)
}

func TestValidateSegmentInput_NullMaxChunks(t *testing.T) {
	in, errs := validator.ValidateSegmentInput(map[string]any{
		"text":    "x",
		"options": map[string]any{"maxChunks": nil},
	})

	require.Empty(t, errs)
	assert.Nil(t, in.Options.MaxChunks)
}

func TestValidateSegmentInput_CollectsAllErrors(t *testing.T) {
	in, errs := validator.ValidateSegmentInput(map[string]any{
		"text":    12.0,
		"options": map[string]any{"maxChunks": 1.5},
	})

	assert.Nil(t, in)
	assert.Equal(t, []string{
		"text must be a string",
		"options.maxChunks must be a positive integer",
	}, errs)
}

func TestValidateSegmentInput_MaxChunksMustBePositive(t *testing.T) {
	for _, v := range []any{0.0, -2.0} {
		in, errs := validator.ValidateSegmentInput(map[string]any{
			"text":    "x",
			"options": map[string]any{"maxChunks": v},
		})

		assert.Nil(t, in)
		assert.Equal(t, []string{"options.maxChunks must be a positive integer"}, errs)
	}
}

func TestValidateExtractInput_StartAfterEnd(t *testing.T) {
	in, errs := validator.ValidateExtractInput(map[string]any{
		"text":  "a\nb\nc\nd\ne",
		"chunk": map[string]any{"startLine": 5.0, "endLine": 2.0},
	})

	assert.Nil(t, in)
	assert.Contains(t, errs, "chunk.startLine must be less than or equal to chunk.endLine")
}

func TestValidateExtractInput_MissingEverything(t *testing.T) {
	in, errs := validator.ValidateExtractInput(map[string]any{})

	assert.Nil(t, in)
	assert.Equal(t, []string{"text is required", "chunk is required"}, errs)
}

func TestValidateExtractInput_ChunkFieldTypes(t *testing.T) {
	_, errs := validator.ValidateExtractInput(map[string]any{
		"text":  "a",
		"chunk": map[string]any{"startLine": "1", "endLine": 0.0, "titleGuess": 7.0},
	})

	assert.Equal(t, []string{
		"chunk.startLine must be a positive integer",
		"chunk.endLine must be a positive integer",
		"chunk.titleGuess must be a string",
	}, errs)
}

func TestValidateExtractInput_Valid(t *testing.T) {
	in, errs := validator.ValidateExtractInput(map[string]any{
		"text":  "a\nb",
		"chunk": map[string]any{"startLine": 1.0, "endLine": 2.0, "titleGuess": "Soup"},
	})

	require.Empty(t, errs)
	assert.Equal(t, 1, in.Chunk.StartLine)
	assert.Equal(t, 2, in.Chunk.EndLine)
	assert.Equal(t, "Soup", in.Chunk.TitleGuess)
}

func TestValidateToSoustackInput(t *testing.T) {
	in, errs := validator.ValidateToSoustackInput(map[string]any{
		"intermediate": map[string]any{
			"title":        "Soup",
			"ingredients":  []any{"water", "salt"},
			"instructions": []any{"boil"},
			"source":       map[string]any{"startLine": 1.0, "endLine": 4.0, "evidence": "Soup"},
		},
		"options": map[string]any{"sourcePath": "/a/soup.txt"},
	})

	require.Empty(t, errs)
	assert.Equal(t, "Soup", in.Intermediate.Title)
	assert.Equal(t, []string{"water", "salt"}, in.Intermediate.Ingredients)
	require.NotNil(t, in.Intermediate.Source)
	assert.Equal(t, 4, *in.Intermediate.Source.EndLine)
	assert.Equal(t, "/a/soup.txt", in.Options.SourcePath)
}

func TestValidateToSoustackInput_Errors(t *testing.T) {
	in, errs := validator.ValidateToSoustackInput(map[string]any{
		"intermediate": map[string]any{
			"title":        "",
			"ingredients":  []any{"water", 3.0},
			"instructions": "boil",
			"source":       map[string]any{"startLine": 4.0, "endLine": 1.0},
		},
		"options": "nope",
	})

	assert.Nil(t, in)
	assert.Equal(t, []string{
		"intermediate.title must not be empty",
		"intermediate.ingredients[1] must be a string",
		"intermediate.instructions must be an array of strings",
		"intermediate.source.startLine must be less than or equal to intermediate.source.endLine",
		"options must be an object",
	}, errs)
}

func TestValidateSegmentChunk(t *testing.T) {
	chunk, errs := validator.ValidateSegmentChunk(map[string]any{
		"startLine": 2.0, "endLine": 9.0, "titleGuess": "Bread", "confidence": 0.8,
	}, "chunks[0]")

	require.Empty(t, errs)
	assert.Equal(t, 2, chunk.StartLine)
	assert.Equal(t, 0.8, chunk.Confidence)

	_, errs = validator.ValidateSegmentChunk("x", "chunks[1]")
	assert.Equal(t, []string{"chunks[1] must be an object"}, errs)
}

func TestValidateRecipeInput(t *testing.T) {
	recipe, errs := validator.ValidateRecipeInput(map[string]any{"recipe": map[string]any{"name": "x"}})
	require.Empty(t, errs)
	assert.Equal(t, "x", recipe["name"])

	recipe, errs = validator.ValidateRecipeInput(map[string]any{"recipe": []any{}})
	assert.Nil(t, recipe)
	assert.Equal(t, []string{"recipe must be an object"}, errs)
}

func TestValidateDocumentInput(t *testing.T) {
	in, errs := validator.ValidateDocumentInput(map[string]any{
		"inputPath": "/docs/book.txt",
		"outDir":    "/out",
		"options":   map[string]any{"returnRecipes": false, "maxRecipes": 10.0},
	})

	require.Empty(t, errs)
	assert.Equal(t, "/docs/book.txt", in.InputPath)
	assert.Equal(t, "/out", in.OutDir)
	require.NotNil(t, in.Options.ReturnRecipes)
	assert.False(t, *in.Options.ReturnRecipes)
	assert.Nil(t, in.Options.EmitFiles)
	assert.Equal(t, 10, *in.Options.MaxRecipes)
}

func TestValidateDocumentInput_Errors(t *testing.T) {
	in, errs := validator.ValidateDocumentInput(map[string]any{
		"inputPath": "",
		"outDir":    1.0,
		"options":   map[string]any{"emitFiles": "yes", "strictValidation": 1.0},
	})

	assert.Nil(t, in)
	assert.Equal(t, []string{
		"inputPath must not be empty",
		"outDir must be a string",
		"options.emitFiles must be a boolean",
		"options.strictValidation must be a boolean",
	}, errs)
}
