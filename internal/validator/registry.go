package validator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jokarl/banlist/internal/nearmatch"
	"github.com/jokarl/banlist/internal/types"
)

// Factory builds a Validator from its arguments
type Factory struct {
	ID              string
	Name            string
	Description     string
	DefaultSeverity types.Severity
	Documentation   *Documentation
	New             func(args Args) (Validator, error)
}

// Registry holds all registered validator factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]*Factory
	order     []string // preserve registration order
}

// NewRegistry creates a new empty Registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]*Factory),
		order:     make([]string, 0),
	}
}

// Register adds a factory to the registry
func (r *Registry) Register(f *Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[f.Name]; !exists {
		r.order = append(r.order, f.Name)
	}
	r.factories[f.Name] = f
}

// Get returns a factory by name or ID. Hub style names such as
// "guardrails/ban_list" resolve to their last path element.
func (r *Registry) Get(name string) (*Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if f, ok := r.factories[name]; ok {
		return f, true
	}
	for _, f := range r.factories {
		if strings.EqualFold(f.ID, name) {
			return f, true
		}
	}
	return nil, false
}

// All returns all registered factories in registration order
func (r *Registry) All() []*Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Factory, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.factories[name])
	}
	return result
}

// Names returns all validator names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Lookup is Get with an error suggesting the closest registered name
func (r *Registry) Lookup(name string) (*Factory, error) {
	if f, ok := r.Get(name); ok {
		return f, nil
	}
	if suggestion, _, ok := nearmatch.FindBestMatch(name, r.Names(), 0.6); ok {
		return nil, fmt.Errorf("unknown validator %q, did you mean %q?", name, suggestion)
	}
	return nil, fmt.Errorf("unknown validator %q (available: %s)", name, strings.Join(r.Names(), ", "))
}

// New builds the named validator from args
func (r *Registry) New(name string, args Args) (Validator, error) {
	f, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = Args{}
	}
	v, err := f.New(args)
	if err != nil {
		return nil, fmt.Errorf("validator %q: %w", f.Name, err)
	}
	return v, nil
}

// DefaultRegistry is the global validator registry
var DefaultRegistry = NewRegistry()

// Register adds a factory to the default registry
func Register(f *Factory) {
	DefaultRegistry.Register(f)
}
