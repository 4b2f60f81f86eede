package provider

import (
	"context"

	"soustackgw/internal/domain"
)

// CallShape builds the argument list for one attempt at calling a stage with
// text and optional options.
type CallShape struct {
	Name string
	Args func(text string, options map[string]any) []any
}

var (
	// ShapeBare passes text (and options, when set) positionally.
	ShapeBare = CallShape{
		Name: "bare",
		Args: func(text string, options map[string]any) []any {
			if len(options) == 0 {
				return []any{text}
			}
			return []any{text, options}
		},
	}

	// ShapeWrapped passes a single {text, options?} record.
	ShapeWrapped = CallShape{
		Name: "wrapped",
		Args: func(text string, options map[string]any) []any {
			record := map[string]any{"text": text}
			if len(options) > 0 {
				record["options"] = options
			}
			return []any{record}
		},
	}
)

// TextShapes is the strategy list for stages that take text.
var TextShapes = []CallShape{ShapeBare, ShapeWrapped}

// invokeShapes tries each shape in order and returns the first success. A
// failing attempt always moves on to the next shape: the cause of a failure
// is opaque, so a genuine provider error on the bare shape is retried too.
func invokeShapes(ctx context.Context, stage domain.Stage, fn StageFunc, shapes []CallShape, text string, options map[string]any) (any, error) {
	callErr := &CallError{Stage: stage}
	for _, shape := range shapes {
		res, err := fn.call(ctx, shape.Args(text, options)...)
		if err == nil {
			return res, nil
		}
		callErr.Shapes = append(callErr.Shapes, shape.Name)
		callErr.Attempts = append(callErr.Attempts, err)
	}
	return nil, callErr
}

// invoke calls fn once with args.
func invoke(ctx context.Context, stage domain.Stage, fn StageFunc, args ...any) (any, error) {
	res, err := fn.call(ctx, args...)
	if err != nil {
		return nil, &CallError{Stage: stage, Shapes: []string{ShapeBare.Name}, Attempts: []error{err}}
	}
	return res, nil
}
