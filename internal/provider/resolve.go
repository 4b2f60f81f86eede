package provider

import "soustackgw/internal/domain"

// Resolve returns the first callable export for stage among candidates. Each
// candidate is probed at every lookup path before the next one is tried.
func Resolve(mod Module, stage domain.Stage, candidates []string) (StageFunc, error) {
	for _, name := range candidates {
		for _, path := range lookupPaths(name) {
			v, ok := lookupPath(mod, path)
			if !ok {
				continue
			}
			if fn, ok := asStage(v); ok {
				return fn, nil
			}
		}
	}
	return nil, &StageNotFoundError{Stage: stage, Candidates: candidates}
}
