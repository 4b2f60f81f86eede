package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"soustackgw/internal/canonical"
	"soustackgw/internal/domain"
	"soustackgw/internal/port"
	"soustackgw/internal/provider"
	"soustackgw/internal/validator"
)

// Messages used when a stage fails without saying why.
const (
	MsgProviderFailed   = "Ingest provider reported failure."
	MsgValidationFailed = "Validation failed."
)

// DocumentService runs a whole document through the ingest provider and the
// validator.
type DocumentService interface {
	Ingest(ctx context.Context, input map[string]any) (*domain.DocumentResult, error)
}

type documentService struct {
	providers port.ProviderSource
	logger    *zap.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(providers port.ProviderSource, logger *zap.Logger) DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentService{providers: providers, logger: logger}
}

// Ingest returns an error only when the ingest provider or its document stage
// cannot be resolved. Every other failure is reported through the result.
func (s *documentService) Ingest(ctx context.Context, input map[string]any) (*domain.DocumentResult, error) {
	in, errs := validator.ValidateDocumentInput(input)
	if errs != nil {
		inputPath, _ := input["inputPath"].(string)
		return failed(inputPath, errs), nil
	}

	req := ingestRequest(in)
	log := s.logger.With(zap.String("input_path", in.InputPath))

	ingest, err := s.providers.Ingest(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := ingest.IngestDocument(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrStageNotFound) {
			return nil, err
		}
		log.Warn("ingest stage failed", zap.Error(err))
		return failed(in.InputPath, []string{providerErrorMessage(err)}), nil
	}
	log.Debug("ingest stage finished", zap.Duration("duration", time.Since(start)))

	providerErrs := errorList(res["errors"])
	if ok, present := res["ok"].(bool); present && !ok {
		if len(providerErrs) == 0 {
			providerErrs = []string{MsgProviderFailed}
		}
		return failed(in.InputPath, providerErrs), nil
	}

	out := &domain.DocumentResult{
		OK:     true,
		Source: domain.DocumentSource{InputPath: in.InputPath},
		Errors: providerErrs,
	}

	if req.ReturnRecipes {
		out.Recipes = normalizeRecipes(res["recipes"], in.InputPath)
		if in.Options.MaxRecipes != nil && len(out.Recipes) > *in.Options.MaxRecipes {
			out.Recipes = out.Recipes[:*in.Options.MaxRecipes]
		}
		if validationErrs := s.validate(ctx, log, out.Recipes); len(validationErrs) > 0 {
			out.OK = false
			out.Errors = append(out.Errors, validationErrs...)
		}
	}

	if req.EmitFiles {
		out.Emitted = emitted(res["emitted"])
	}

	log.Info("document ingested",
		zap.Bool("ok", out.OK),
		zap.Int("recipes", len(out.Recipes)),
		zap.Int("errors", len(out.Errors)),
	)
	return out, nil
}

// validate runs the validator over recipes in order and returns the
// slug-prefixed errors of every invalid one. Validation is skipped when no
// validator can be resolved.
func (s *documentService) validate(ctx context.Context, log *zap.Logger, recipes []domain.DocumentRecipe) []string {
	if len(recipes) == 0 {
		return nil
	}
	v, err := s.providers.Validator(ctx)
	if err != nil {
		log.Warn("validator unavailable, skipping recipe validation", zap.Error(err))
		return nil
	}

	var out []string
	for _, r := range recipes {
		res, err := v.Validate(ctx, r.Recipe)
		if err != nil {
			if errors.Is(err, domain.ErrStageNotFound) {
				log.Warn("validator has no validate stage, skipping recipe validation", zap.Error(err))
				return nil
			}
			res = &domain.ValidationResult{Errors: []string{providerErrorMessage(err)}}
		}
		if res.OK {
			continue
		}

		msgs := append([]string{}, res.Errors...)
		if len(msgs) == 0 {
			msgs = []string{MsgValidationFailed}
		}
		sort.Strings(msgs)
		for _, m := range msgs {
			out = append(out, "["+r.Slug+"] "+m)
		}
	}
	return out
}

func ingestRequest(in *domain.DocumentInput) domain.IngestRequest {
	req := domain.IngestRequest{
		InputPath:        in.InputPath,
		EmitFiles:        in.OutDir != "",
		ReturnRecipes:    true,
		OutDir:           in.OutDir,
		MaxRecipes:       in.Options.MaxRecipes,
		StrictValidation: in.Options.StrictValidation,
	}
	if in.Options.EmitFiles != nil {
		req.EmitFiles = *in.Options.EmitFiles
	}
	if in.Options.ReturnRecipes != nil {
		req.ReturnRecipes = *in.Options.ReturnRecipes
	}
	return req
}

func failed(inputPath string, errs []string) *domain.DocumentResult {
	return &domain.DocumentResult{
		OK:     false,
		Source: domain.DocumentSource{InputPath: inputPath},
		Errors: errs,
	}
}

// normalizeRecipes canonicalizes every recipe entry reported by the provider
// and orders them by slug, then name. An entry is either {name?, slug?,
// sourcePath?, recipe} or, without a recipe key, the recipe object itself.
// A wrapped recipe that is not an object canonicalizes as {}.
func normalizeRecipes(v any, inputPath string) []domain.DocumentRecipe {
	entries, _ := v.([]any)
	out := make([]domain.DocumentRecipe, 0, len(entries))

	for _, e := range entries {
		entry := canonical.Object(e)
		body := entry
		if raw, wrapped := entry["recipe"]; wrapped {
			body = canonical.Object(raw)
		}

		name := trimmedString(entry["name"])
		explicit, _ := entry["slug"].(string)
		sourcePath, _ := entry["sourcePath"].(string)
		if sourcePath == "" {
			sourcePath = inputPath
		}

		slug := canonical.EnsureSlug(explicit, name, sourcePath)
		if name == "" {
			name = slug
		}
		out = append(out, domain.DocumentRecipe{
			Name:   name,
			Slug:   slug,
			Recipe: canonical.Canonicalize(body, slug),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Slug != out[j].Slug {
			return out[i].Slug < out[j].Slug
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// emitted passes the provider's emission metadata through when it is complete.
func emitted(v any) *domain.Emitted {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	outDir, ok1 := m["outDir"].(string)
	indexPath, ok2 := m["indexPath"].(string)
	recipesDir, ok3 := m["recipesDir"].(string)
	count, ok4 := number(m["count"])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}
	return &domain.Emitted{OutDir: outDir, IndexPath: indexPath, RecipesDir: recipesDir, Count: count}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func errorList(v any) []string {
	out := []string{}
	list, _ := v.([]any)
	for _, e := range list {
		if msg := provider.ErrorMessage(e); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// providerErrorMessage prefers the provider's own message over the wrapping
// added by the adapter.
func providerErrorMessage(err error) string {
	var callErr *provider.CallError
	if errors.As(err, &callErr) && len(callErr.Attempts) > 0 {
		err = callErr.Attempts[len(callErr.Attempts)-1]
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgProviderFailed
}
