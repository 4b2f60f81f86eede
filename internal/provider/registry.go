package provider

import (
	"sort"
	"sync"
)

// ModuleFactory builds a fresh in-process module.
type ModuleFactory func() (Module, error)

// registry of in-process modules, populated by init() in provider packages
// or explicitly via RegisterModule.
var (
	modulesMu sync.RWMutex
	modules   = map[string]ModuleFactory{}
)

// RegisterModule registers an in-process module factory under name.
func RegisterModule(name string, factory ModuleFactory) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	modules[name] = factory
}

// UnregisterModule removes name from the registry.
func UnregisterModule(name string) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	delete(modules, name)
}

// RegisteredModules returns the sorted names of all in-process modules.
func RegisteredModules() []string {
	modulesMu.RLock()
	defer modulesMu.RUnlock()
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registeredModule(name string) (ModuleFactory, bool) {
	modulesMu.RLock()
	defer modulesMu.RUnlock()
	f, ok := modules[name]
	return f, ok
}
