package provider

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Module reference schemes understood by Loader. References without a
// scheme name an in-process module registered with RegisterModule.
const (
	SchemeScript = "script:"
	SchemeExec   = "exec:"
)

// Loader resolves module references. It holds no per-module state; every
// Load builds a fresh module.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load resolves ref to a module.
func (l *Loader) Load(ctx context.Context, ref string) (Module, error) {
	var (
		mod Module
		err error
	)
	switch {
	case strings.HasPrefix(ref, SchemeScript):
		mod, err = loadScript(strings.TrimPrefix(ref, SchemeScript))
	case strings.HasPrefix(ref, SchemeExec):
		mod, err = loadExec(ctx, strings.TrimPrefix(ref, SchemeExec))
	default:
		factory, ok := registeredModule(ref)
		if !ok {
			return nil, &ModuleNotFoundError{Ref: ref}
		}
		mod, err = factory()
	}
	if err != nil {
		l.logger.Warn("provider module load failed", zap.String("ref", ref), zap.Error(err))
		return nil, &ModuleNotFoundError{Ref: ref, Err: err}
	}
	l.logger.Debug("provider module loaded", zap.String("ref", ref))
	return mod, nil
}
