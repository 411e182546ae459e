package rewrite

import (
	"fmt"
	"sort"
	"sync"
)

// Transformation is one registered code rewrite.
//
// Patterns select the files a transformation looks at (doublestar globs
// against project-relative paths). Rewrite returns the new content and
// whether anything changed.
type Transformation interface {
	ID() string
	Description() string
	Patterns() []string
	Rewrite(path string, content []byte) ([]byte, bool)
}

// Factory constructs a Transformation. Registration happens at startup so
// "transformation not found" is a static, testable condition rather than a
// runtime lookup fault.
type Factory func() Transformation

// Registry maps transformation ids to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under its transformation's id. Registering the
// same id twice is a programming error.
func (r *Registry) Register(f Factory) error {
	if f == nil {
		return fmt.Errorf("factory is nil")
	}
	id := f().ID()
	if id == "" {
		return fmt.Errorf("transformation id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("transformation already registered: %s", id)
	}
	r.factories[id] = f
	return nil
}

// Lookup returns a fresh Transformation for id, or false if unregistered.
func (r *Registry) Lookup(id string) (Transformation, bool) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return f(), true
}

// IDs returns all registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for id := range r.factories {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
