package validator

import "soustackgw/internal/domain"

// ValidateToSoustackInput validates the input of ingest.toSoustack.
func ValidateToSoustackInput(input map[string]any) (*domain.ToSoustackInput, []string) {
	var errs violations

	var intermediate *domain.IntermediateRecipe
	if obj, ok := requireObject(input, "", "intermediate", &errs); ok {
		intermediate = intermediateRecipe(obj, "intermediate", &errs)
	}

	var opts domain.ToSoustackOptions
	if options, ok := optionalObject(input, "", "options", &errs); ok && options != nil {
		opts.SourcePath, _ = optionalString(options, "options", "sourcePath", &errs)
	}

	if len(errs) > 0 {
		return nil, errs.list()
	}
	return &domain.ToSoustackInput{Intermediate: *intermediate, Options: opts}, nil
}

// ValidateIntermediateRecipe checks a value produced by the extract stage.
func ValidateIntermediateRecipe(v any, path string) (*domain.IntermediateRecipe, []string) {
	var errs violations
	obj, ok := v.(map[string]any)
	if !ok {
		errs.add("%s must be an object", path)
		return nil, errs.list()
	}
	recipe := intermediateRecipe(obj, path, &errs)
	if len(errs) > 0 {
		return nil, errs.list()
	}
	return recipe, nil
}

func intermediateRecipe(obj map[string]any, path string, errs *violations) *domain.IntermediateRecipe {
	recipe := &domain.IntermediateRecipe{}

	if title, ok := requireString(obj, path, "title", errs); ok {
		if title == "" {
			errs.add("%s must not be empty", join(path, "title"))
		}
		recipe.Title = title
	}
	recipe.Ingredients, _ = stringList(obj, path, "ingredients", errs)
	recipe.Instructions, _ = stringList(obj, path, "instructions", errs)

	srcPath := join(path, "source")
	if src, ok := optionalObject(obj, path, "source", errs); ok && src != nil {
		source := &domain.RecipeSource{}
		start, okStart := optionalPositiveInt(src, srcPath, "startLine", errs)
		end, okEnd := optionalPositiveInt(src, srcPath, "endLine", errs)
		if okStart && okEnd && start != nil && end != nil {
			checkLineOrder(srcPath, *start, *end, errs)
		}
		source.StartLine, source.EndLine = start, end
		source.Evidence, _ = optionalString(src, srcPath, "evidence", errs)
		recipe.Source = source
	}
	return recipe
}
