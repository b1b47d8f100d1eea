package annotation

import "github.com/jokarl/banlist/internal/validator"

// Resolver maps a validator spec written in an annotation to a canonical
// validator name
type Resolver interface {
	Resolve(spec string) (string, bool)
}

// RegistryResolver resolves names and IDs against a validator registry
type RegistryResolver struct {
	registry *validator.Registry
}

// NewRegistryResolver creates a resolver over registry. A nil registry means
// validator.DefaultRegistry.
func NewRegistryResolver(registry *validator.Registry) *RegistryResolver {
	if registry == nil {
		registry = validator.DefaultRegistry
	}
	return &RegistryResolver{registry: registry}
}

// Resolve returns the registered name for a validator name or ID
func (r *RegistryResolver) Resolve(spec string) (string, bool) {
	f, ok := r.registry.Get(spec)
	if !ok {
		return "", false
	}
	return f.Name, true
}
