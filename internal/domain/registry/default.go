package registry

import "sync"

var (
	defaultMu       sync.RWMutex
	defaultRegistry *Registry
	defaultCatalog  = NewCatalog()
)

// DefaultCatalog returns the process-wide constructor catalog used by the
// default registry.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultMu.RLock()
	reg := defaultRegistry
	defaultMu.RUnlock()
	if reg != nil {
		return reg
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(defaultCatalog)
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry and returns a function that
// restores the previous one. Tests use it to run against an isolated registry:
//
//	restore := registry.SetDefault(registry.NewRegistry(catalog))
//	defer restore()
func SetDefault(reg *Registry) (restore func()) {
	defaultMu.Lock()
	prev := defaultRegistry
	defaultRegistry = reg
	defaultMu.Unlock()

	return func() {
		defaultMu.Lock()
		defaultRegistry = prev
		defaultMu.Unlock()
	}
}

// Register adds an environment to the process-wide registry.
func Register(id, entryPoint string, kwargs Kwargs) error {
	return Default().Register(id, entryPoint, kwargs)
}

// Make builds an environment from the process-wide registry.
func Make(id string, kwargs Kwargs) (any, error) {
	return Default().Make(id, kwargs)
}

// RegisteredEnvironments lists identifiers in the process-wide registry.
func RegisteredEnvironments() []string {
	return Default().RegisteredEnvironments()
}
