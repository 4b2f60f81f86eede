package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"soustackgw/internal/canonical"
	"soustackgw/internal/domain"
	"soustackgw/internal/port"
)

// IngestAdapter maps a loaded module onto port.IngestProvider. Stages are
// resolved when called, so a module lacking one stage still serves the others.
type IngestAdapter struct {
	mod     Module
	aliases Aliases
}

// NewIngestAdapter wraps mod using the given candidate table.
func NewIngestAdapter(mod Module, aliases Aliases) *IngestAdapter {
	return &IngestAdapter{mod: mod, aliases: aliases}
}

var _ port.IngestProvider = (*IngestAdapter)(nil)

func (a *IngestAdapter) stage(s domain.Stage) (StageFunc, error) {
	return Resolve(a.mod, s, a.aliases.Candidates(s))
}

// Normalize accepts either a string result or a {text} record.
func (a *IngestAdapter) Normalize(ctx context.Context, text string) (string, error) {
	fn, err := a.stage(domain.StageNormalize)
	if err != nil {
		return "", err
	}
	res, err := invokeShapes(ctx, domain.StageNormalize, fn, TextShapes, text, nil)
	if err != nil {
		return "", err
	}
	switch v := canonical.Plain(res).(type) {
	case string:
		return v, nil
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: normalize returned %T", domain.ErrMalformedResponse, res)
}

// Segment accepts either a bare chunk list or a {chunks} record.
func (a *IngestAdapter) Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]any, error) {
	fn, err := a.stage(domain.StageSegment)
	if err != nil {
		return nil, err
	}
	res, err := invokeShapes(ctx, domain.StageSegment, fn, TextShapes, text, canonical.Object(opts))
	if err != nil {
		return nil, err
	}
	switch v := canonical.Plain(res).(type) {
	case []any:
		return v, nil
	case map[string]any:
		if chunks, ok := v["chunks"].([]any); ok {
			return chunks, nil
		}
		if v["chunks"] == nil {
			return []any{}, nil
		}
	case nil:
		return []any{}, nil
	}
	return nil, fmt.Errorf("%w: segment returned %T", domain.ErrMalformedResponse, res)
}

func (a *IngestAdapter) Extract(ctx context.Context, chunk domain.ChunkRef, lines []string) (any, error) {
	fn, err := a.stage(domain.StageExtract)
	if err != nil {
		return nil, err
	}
	linesArg := make([]any, len(lines))
	for i, l := range lines {
		linesArg[i] = l
	}
	res, err := invoke(ctx, domain.StageExtract, fn, canonical.Object(chunk), linesArg)
	if err != nil {
		return nil, err
	}
	return canonical.Plain(res), nil
}

func (a *IngestAdapter) ToSoustack(ctx context.Context, in domain.IntermediateRecipe, opts domain.ToSoustackOptions) (any, error) {
	fn, err := a.stage(domain.StageToSoustack)
	if err != nil {
		return nil, err
	}
	args := []any{canonical.Object(in)}
	if o := canonical.Object(opts); len(o) > 0 {
		args = append(args, o)
	}
	res, err := invoke(ctx, domain.StageToSoustack, fn, args...)
	if err != nil {
		return nil, err
	}
	return canonical.Plain(res), nil
}

// IngestDocument treats a non-object result as an empty one.
func (a *IngestAdapter) IngestDocument(ctx context.Context, req domain.IngestRequest) (map[string]any, error) {
	fn, err := a.stage(domain.StageIngest)
	if err != nil {
		return nil, err
	}
	res, err := invoke(ctx, domain.StageIngest, fn, canonical.Object(req))
	if err != nil {
		return nil, err
	}
	if obj := canonical.Object(res); obj != nil {
		return obj, nil
	}
	return map[string]any{}, nil
}

// ValidatorAdapter maps a loaded module onto port.RecipeValidator.
type ValidatorAdapter struct {
	mod     Module
	aliases Aliases
}

// NewValidatorAdapter wraps mod using the given candidate table.
func NewValidatorAdapter(mod Module, aliases Aliases) *ValidatorAdapter {
	return &ValidatorAdapter{mod: mod, aliases: aliases}
}

var _ port.RecipeValidator = (*ValidatorAdapter)(nil)

// Validate accepts {ok, errors}, a bare boolean, or a bare error list.
// When ok is missing it is derived from the absence of errors.
func (a *ValidatorAdapter) Validate(ctx context.Context, recipe map[string]any) (*domain.ValidationResult, error) {
	fn, err := Resolve(a.mod, domain.StageValidate, a.aliases.Candidates(domain.StageValidate))
	if err != nil {
		return nil, err
	}
	res, err := invoke(ctx, domain.StageValidate, fn, recipe)
	if err != nil {
		return nil, err
	}
	return NormalizeValidation(res), nil
}

// NormalizeValidation converts a validator result into a ValidationResult
// with stringified, sorted errors.
func NormalizeValidation(res any) *domain.ValidationResult {
	out := &domain.ValidationResult{Errors: []string{}}
	var okValue any
	var errs any

	switch v := canonical.Plain(res).(type) {
	case bool:
		okValue = v
	case []any:
		errs = v
	case map[string]any:
		okValue = v["ok"]
		if okValue == nil {
			okValue = v["valid"]
		}
		errs = v["errors"]
	}

	if list, ok := errs.([]any); ok {
		for _, e := range list {
			if msg := ErrorMessage(e); msg != "" {
				out.Errors = append(out.Errors, msg)
			}
		}
	}
	sort.Strings(out.Errors)

	if b, ok := okValue.(bool); ok {
		out.OK = b
	} else {
		out.OK = len(out.Errors) == 0
	}
	return out
}

// ErrorMessage renders one provider-reported error item as text. Objects
// with a message are rendered as "<path>: <message>" when a path is present.
func ErrorMessage(e any) string {
	switch v := e.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		msg, _ := v["message"].(string)
		if msg == "" {
			break
		}
		for _, key := range []string{"path", "instancePath", "field"} {
			if p, ok := v[key].(string); ok && p != "" {
				return p + ": " + msg
			}
		}
		return msg
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprint(e)
	}
	return string(data)
}
