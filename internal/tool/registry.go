package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"soustackgw/internal/domain"
)

// ErrToolAlreadyRegistered is returned when a name is registered twice.
var ErrToolAlreadyRegistered = errors.New("tool already registered")

// Handler runs one tool. The returned output must serialize to a JSON object.
type Handler func(ctx context.Context, input map[string]any) (any, error)

// Tool is a named operation exposed over the protocol.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry maps tool names to tools. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds t to the registry.
func (r *Registry) Register(t *Tool) error {
	if t == nil || t.Name == "" || t.Handler == nil {
		return errors.New("tool must have a name and a handler")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// MustRegister registers t and panics on error.
func (r *Registry) MustRegister(t *Tool) {
	if err := r.Register(t); err != nil {
		panic(fmt.Sprintf("register tool %s: %v", t.Name, err))
	}
}

// Get returns the tool registered under name, or nil.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered tools ordered by name.
func (r *Registry) All() []*Tool {
	names := r.Names()
	out := make([]*Tool, 0, len(names))
	for _, name := range names {
		if t := r.Get(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Execute runs the named tool. An unknown name yields domain.ErrToolNotFound.
func (r *Registry) Execute(ctx context.Context, name string, input map[string]any) (any, error) {
	t := r.Get(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrToolNotFound, name)
	}
	if input == nil {
		input = map[string]any{}
	}
	return t.Handler(ctx, input)
}
