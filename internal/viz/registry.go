package viz

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry errors.
var (
	ErrUnknownStructure  = errors.New("unknown structure")
	ErrAlreadyRegistered = errors.New("structure already registered")
)

// Factory builds a fresh, empty structure.
type Factory func() Visualizable

// Registry maps structure names to factories. It is safe for concurrent
// use; registration normally happens once at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. Registering the same name twice is
// an error so wiring mistakes surface at startup.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	r.factories[name] = factory

	return nil
}

// New builds a fresh structure by name.
func (r *Registry) New(name string) (Visualizable, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, name)
	}

	return factory(), nil
}

// Names returns the registered structure names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
