package validator

// ValidateRecipeInput validates the input of ingest.validate.
func ValidateRecipeInput(input map[string]any) (map[string]any, []string) {
	var errs violations
	recipe, _ := requireObject(input, "", "recipe", &errs)
	if len(errs) > 0 {
		return nil, errs.list()
	}
	return recipe, nil
}
