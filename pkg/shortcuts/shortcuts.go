// Package shortcuts implements a keyboard shortcut registry.
//
// A Registry is owned by whoever feeds it key events; there is no process
// wide instance. Scopes can be stacked with Push and Pop so that a modal UI
// can temporarily replace or extend the active bindings.
package shortcuts

import (
	"slices"
	"sync"
)

// Handler runs when a shortcut fires. key is the key that completed the chord.
type Handler func(key string)

// Shortcut is a registered binding. Keys must all be held for it to fire.
type Shortcut struct {
	Keys    []string
	handler Handler
}

// Registry tracks held keys and the active shortcut scope.
type Registry struct {
	mu     sync.Mutex
	stack  [][]*Shortcut
	active []*Shortcut
	held   map[string]struct{}
}

func New() *Registry {
	return &Registry{
		held: make(map[string]struct{}),
	}
}

// On binds fn to the chord keys in the active scope.
func (r *Registry) On(keys []string, fn Handler) *Shortcut {
	s := &Shortcut{Keys: slices.Clone(keys), handler: fn}

	r.mu.Lock()
	r.active = append(r.active, s)
	r.mu.Unlock()

	return s
}

// Off removes a binding from the active scope.
func (r *Registry) Off(s *Shortcut) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = slices.DeleteFunc(slices.Clone(r.active), func(o *Shortcut) bool {
		return o == s
	})
}

// Once binds fn for a single activation.
func (r *Registry) Once(keys []string, fn Handler) *Shortcut {
	var s *Shortcut
	s = r.On(keys, func(key string) {
		r.Off(s)
		fn(key)
	})
	return s
}

// Push saves the active scope. With reset the new scope starts empty,
// otherwise it starts as a copy of the saved one.
func (r *Registry) Push(reset bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stack = append(r.stack, r.active)
	if reset {
		r.active = nil
	} else {
		r.active = slices.Clone(r.active)
	}
}

// Pop restores the scope saved by the matching Push. Popping an empty stack
// leaves no bindings active.
func (r *Registry) Pop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stack) == 0 {
		r.active = nil
		return
	}
	r.active = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// KeyDown marks key and any modifiers as held and fires the first active
// shortcut whose keys are all held. Held keys are cleared after a shortcut
// fires. It reports whether a shortcut fired.
func (r *Registry) KeyDown(key string, modifiers ...string) bool {
	r.mu.Lock()
	r.held[key] = struct{}{}
	for _, m := range modifiers {
		r.held[m] = struct{}{}
	}

	var match *Shortcut
	for _, s := range r.active {
		if r.allHeld(s.Keys) {
			match = s
			break
		}
	}
	if match != nil {
		clear(r.held)
	}
	r.mu.Unlock()

	if match == nil {
		return false
	}
	match.handler(key)
	return true
}

func (r *Registry) allHeld(keys []string) bool {
	for _, k := range keys {
		if _, ok := r.held[k]; !ok {
			return false
		}
	}
	return true
}

// KeyUp releases key and any modifiers.
func (r *Registry) KeyUp(key string, modifiers ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.held, key)
	for _, m := range modifiers {
		delete(r.held, m)
	}
}

// Blur releases every held key, e.g. when input focus is lost.
func (r *Registry) Blur() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.held)
}

func (r *Registry) IsKeyDown(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.held[key]
	return ok
}

// Len returns the number of active bindings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.active)
}
