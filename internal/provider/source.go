package provider

import (
	"context"

	"soustackgw/internal/domain"
	"soustackgw/internal/port"
)

// Source implements port.ProviderSource over a Loader. Modules are loaded on
// every call and never cached.
type Source struct {
	loader  *Loader
	refs    domain.ProviderRefs
	aliases Aliases
}

// NewSource creates a Source for the given module references.
func NewSource(loader *Loader, refs domain.ProviderRefs, aliases Aliases) *Source {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Source{loader: loader, refs: refs, aliases: aliases}
}

var _ port.ProviderSource = (*Source)(nil)

func (s *Source) Ingest(ctx context.Context) (port.IngestProvider, error) {
	mod, err := s.loader.Load(ctx, s.refs.Ingest)
	if err != nil {
		return nil, err
	}
	return NewIngestAdapter(mod, s.aliases), nil
}

func (s *Source) Validator(ctx context.Context) (port.RecipeValidator, error) {
	mod, err := s.loader.Load(ctx, s.refs.Validator)
	if err != nil {
		return nil, err
	}
	return NewValidatorAdapter(mod, s.aliases), nil
}

func (s *Source) Refs() domain.ProviderRefs {
	return s.refs
}
