package provider

import (
	"fmt"
	"strings"

	"soustackgw/internal/domain"
)

// StageNotFoundError indicates no candidate export of a module is callable for a stage.
type StageNotFoundError struct {
	Stage      domain.Stage
	Candidates []string
}

func (e *StageNotFoundError) Error() string {
	return fmt.Sprintf("provider stage %q not found (tried %s)", e.Stage, strings.Join(e.Candidates, ", "))
}

func (e *StageNotFoundError) Unwrap() error {
	return domain.ErrStageNotFound
}

// ModuleNotFoundError indicates a module reference could not be resolved.
type ModuleNotFoundError struct {
	Ref string
	Err error
}

func (e *ModuleNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider module %q could not be loaded: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("provider module %q is not registered", e.Ref)
}

func (e *ModuleNotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrProviderNotFound, e.Err}
	}
	return []error{domain.ErrProviderNotFound}
}

// CallError reports a stage whose every call shape failed. Attempts holds one
// error per shape, in the order the shapes were tried.
type CallError struct {
	Stage    domain.Stage
	Shapes   []string
	Attempts []error
}

func (e *CallError) Error() string {
	if len(e.Attempts) == 1 {
		return fmt.Sprintf("provider stage %q failed: %v", e.Stage, e.Attempts[0])
	}
	parts := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %v", e.Shapes[i], err)
	}
	return fmt.Sprintf("provider stage %q failed (%s)", e.Stage, strings.Join(parts, "; "))
}

func (e *CallError) Unwrap() []error {
	return append([]error{domain.ErrProviderCall}, e.Attempts...)
}
