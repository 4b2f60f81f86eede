package validator

import "soustackgw/internal/domain"

// ValidateDocumentInput validates the input of ingest.document.
func ValidateDocumentInput(input map[string]any) (*domain.DocumentInput, []string) {
	var errs violations

	inputPath, ok := requireString(input, "", "inputPath", &errs)
	if ok && inputPath == "" {
		errs.add("inputPath must not be empty")
	}
	outDir, _ := optionalString(input, "", "outDir", &errs)

	var opts domain.DocumentOptions
	if options, ok := optionalObject(input, "", "options", &errs); ok && options != nil {
		opts.EmitFiles, _ = optionalBool(options, "options", "emitFiles", &errs)
		opts.ReturnRecipes, _ = optionalBool(options, "options", "returnRecipes", &errs)
		opts.MaxRecipes, _ = optionalPositiveInt(options, "options", "maxRecipes", &errs)
		opts.StrictValidation, _ = optionalBool(options, "options", "strictValidation", &errs)
	}

	if len(errs) > 0 {
		return nil, errs.list()
	}
	return &domain.DocumentInput{InputPath: inputPath, OutDir: outDir, Options: opts}, nil
}
