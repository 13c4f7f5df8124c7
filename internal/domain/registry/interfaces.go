package registry

// Constructor builds an environment from keyword arguments. The returned
// value is opaque to the registry.
type Constructor func(kwargs Kwargs) (any, error)

// Resolver maps an entry point reference to a Constructor.
// Implementations report failures wrapping ErrEntryPointResolution.
type Resolver interface {
	Resolve(entryPoint string) (Constructor, error)
}

var _ Resolver = (*Catalog)(nil)
