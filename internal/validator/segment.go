package validator

import "soustackgw/internal/domain"

// ValidateSegmentInput validates the input of ingest.segment.
func ValidateSegmentInput(input map[string]any) (*domain.SegmentInput, []string) {
	var errs violations

	text, _ := requireString(input, "", "text", &errs)

	var opts domain.SegmentOptions
	if options, ok := optionalObject(input, "", "options", &errs); ok && options != nil {
		opts.MaxChunks, _ = optionalPositiveInt(options, "options", "maxChunks", &errs)
	}

	if len(errs) > 0 {
		return nil, errs.list()
	}
	return &domain.SegmentInput{Text: text, Options: opts}, nil
}

// ValidateSegmentChunk checks one chunk returned by the segment stage.
func ValidateSegmentChunk(v any, path string) (*domain.SegmentChunk, []string) {
	var errs violations

	obj, ok := v.(map[string]any)
	if !ok {
		errs.add("%s must be an object", path)
		return nil, errs.list()
	}

	start, okStart := requirePositiveInt(obj, path, "startLine", &errs)
	end, okEnd := requirePositiveInt(obj, path, "endLine", &errs)
	if okStart && okEnd {
		checkLineOrder(path, start, end, &errs)
	}
	title, _ := optionalString(obj, path, "titleGuess", &errs)
	evidence, _ := optionalString(obj, path, "evidence", &errs)

	var confidence float64
	if present(obj, "confidence") {
		f, ok := asFloat(obj["confidence"])
		if !ok {
			errs.add("%s must be a number", join(path, "confidence"))
		}
		confidence = f
	}

	if len(errs) > 0 {
		return nil, errs.list()
	}
	return &domain.SegmentChunk{
		StartLine:  start,
		EndLine:    end,
		TitleGuess: title,
		Confidence: confidence,
		Evidence:   evidence,
	}, nil
}
