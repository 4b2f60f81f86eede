package domain

// Request is one decoded protocol line.
type Request struct {
	ID    string         `json:"id"`
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

// Response is the envelope written for every non-blank input line.
// ID is nil only when the line itself could not be parsed or shaped.
type Response struct {
	ID     *string    `json:"id"`
	OK     bool       `json:"ok"`
	Output any        `json:"output,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a protocol-level failure.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Success builds a successful response for the given request id.
func Success(id string, output any) *Response {
	return &Response{ID: &id, OK: true, Output: output}
}

// Failure builds a failed response. A nil id serializes as JSON null.
func Failure(id *string, code ErrorCode, message string, details map[string]any) *Response {
	return &Response{ID: id, OK: false, Error: &ErrorBody{Code: code, Message: message, Details: details}}
}

// SegmentChunk is a line range of the source text that likely holds one recipe.
type SegmentChunk struct {
	StartLine  int     `json:"startLine"`
	EndLine    int     `json:"endLine"`
	TitleGuess string  `json:"titleGuess,omitempty"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence,omitempty"`
}

// SegmentOptions tunes the segment stage.
type SegmentOptions struct {
	MaxChunks *int `json:"maxChunks,omitempty"`
}

// SegmentInput is the validated input of ingest.segment.
type SegmentInput struct {
	Text    string
	Options SegmentOptions
}

// ChunkRef is the chunk selector passed to ingest.extract.
type ChunkRef struct {
	StartLine  int    `json:"startLine"`
	EndLine    int    `json:"endLine"`
	TitleGuess string `json:"titleGuess,omitempty"`
}

// ExtractInput is the validated input of ingest.extract.
type ExtractInput struct {
	Text  string
	Chunk ChunkRef
}

// RecipeSource points back into the text a recipe was extracted from.
type RecipeSource struct {
	StartLine *int   `json:"startLine,omitempty"`
	EndLine   *int   `json:"endLine,omitempty"`
	Evidence  string `json:"evidence,omitempty"`
}

// IntermediateRecipe is the provider-neutral result of extraction.
type IntermediateRecipe struct {
	Title        string        `json:"title"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	Source       *RecipeSource `json:"source,omitempty"`
}

// ToSoustackOptions tunes the toSoustack stage.
type ToSoustackOptions struct {
	SourcePath string `json:"sourcePath,omitempty"`
}

// ToSoustackInput is the validated input of ingest.toSoustack.
type ToSoustackInput struct {
	Intermediate IntermediateRecipe
	Options      ToSoustackOptions
}

// ValidationResult is the normalized outcome of the validator stage.
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

// DocumentOptions are the optional switches of ingest.document.
type DocumentOptions struct {
	EmitFiles        *bool
	ReturnRecipes    *bool
	MaxRecipes       *int
	StrictValidation *bool
}

// DocumentInput is the validated input of ingest.document.
type DocumentInput struct {
	InputPath string
	OutDir    string
	Options   DocumentOptions
}

// IngestRequest is what the ingest provider's document stage receives.
type IngestRequest struct {
	InputPath        string `json:"inputPath"`
	EmitFiles        bool   `json:"emitFiles"`
	ReturnRecipes    bool   `json:"returnRecipes"`
	OutDir           string `json:"outDir,omitempty"`
	MaxRecipes       *int   `json:"maxRecipes,omitempty"`
	StrictValidation *bool  `json:"strictValidation,omitempty"`
}

// DocumentSource echoes the document a run was started for.
type DocumentSource struct {
	InputPath string `json:"inputPath"`
}

// DocumentRecipe is one canonicalized recipe produced by a document run.
type DocumentRecipe struct {
	Name   string         `json:"name"`
	Slug   string         `json:"slug"`
	Recipe map[string]any `json:"recipe"`
}

// Emitted is the emission metadata reported by the ingest provider.
type Emitted struct {
	OutDir     string  `json:"outDir"`
	IndexPath  string  `json:"indexPath"`
	RecipesDir string  `json:"recipesDir"`
	Count      float64 `json:"count"`
}

// DocumentResult is the output of ingest.document.
type DocumentResult struct {
	OK      bool             `json:"ok"`
	Source  DocumentSource   `json:"source"`
	Recipes []DocumentRecipe `json:"recipes,omitzero"`
	Emitted *Emitted         `json:"emitted,omitempty"`
	Errors  []string         `json:"errors"`
}

// ProviderRefs are the module references the providers are loaded from.
type ProviderRefs struct {
	Ingest    string `json:"ingest"`
	Validator string `json:"validator"`
}
