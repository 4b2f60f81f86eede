package validator

import "soustackgw/internal/domain"

// ValidateExtractInput validates the input of ingest.extract.
func ValidateExtractInput(input map[string]any) (*domain.ExtractInput, []string) {
	var errs violations

	text, _ := requireString(input, "", "text", &errs)

	var chunk domain.ChunkRef
	if obj, ok := requireObject(input, "", "chunk", &errs); ok {
		start, okStart := requirePositiveInt(obj, "chunk", "startLine", &errs)
		end, okEnd := requirePositiveInt(obj, "chunk", "endLine", &errs)
		if okStart && okEnd {
			checkLineOrder("chunk", start, end, &errs)
		}
		title, _ := optionalString(obj, "chunk", "titleGuess", &errs)
		chunk = domain.ChunkRef{StartLine: start, EndLine: end, TitleGuess: title}
	}

	if len(errs) > 0 {
		return nil, errs.list()
	}
	return &domain.ExtractInput{Text: text, Chunk: chunk}, nil
}

// ValidateChunkBounds checks that chunk lies within a text of lineCount lines.
func ValidateChunkBounds(chunk domain.ChunkRef, lineCount int) []string {
	var errs violations
	if chunk.EndLine > lineCount {
		errs.add("chunk.endLine (%d) exceeds the number of lines in text (%d)", chunk.EndLine, lineCount)
	}
	return errs.list()
}
