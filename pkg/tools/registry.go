package tools

import (
	"slices"
	"sync"
)

// Registry owns the tools available to an editor.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates a registry holding the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{
		tools: make(map[string]Tool),
	}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// NewDefaultRegistry creates a registry with the built-in tools.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Defaults()...)
}

// Register adds a tool to the registry.
// If a tool with the same id exists, it is overwritten in place.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[t.ID()]; !ok {
		r.order = append(r.order, t.ID())
	}
	r.tools[t.ID()] = t
}

// Unregister removes a tool. It reports whether the tool was present.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[id]; !ok {
		return false
	}
	delete(r.tools, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return true
}

// Get looks up a tool by id.
func (r *Registry) Get(id string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[id]
	return t, ok
}

// List returns the tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}
