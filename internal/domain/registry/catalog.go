package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog errors
var (
	ErrEmptyModule        = errors.New("catalog module cannot be empty")
	ErrEmptyType          = errors.New("catalog type name cannot be empty")
	ErrInvalidTypeName    = errors.New("catalog type name cannot contain ':'")
	ErrNilConstructor     = errors.New("catalog constructor cannot be nil")
	ErrDuplicateType      = errors.New("type already present in catalog module")
	ErrUnknownModule      = errors.New("module not found in catalog")
	ErrUnknownCatalogType = errors.New("type not found in catalog module")
)

// Catalog is an in-process Resolver. Packages that provide environments
// add their constructors under a module path, and entry points of the form
// {module}:{type} resolve against it.
type Catalog struct {
	mu      sync.RWMutex
	modules map[string]map[string]Constructor
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		modules: make(map[string]map[string]Constructor),
	}
}

// Register adds a constructor for module:typeName.
func (c *Catalog) Register(module, typeName string, ctor Constructor) error {
	if module == "" {
		return ErrEmptyModule
	}
	if typeName == "" {
		return ErrEmptyType
	}
	// Entry points split on the last colon, so such a type could never resolve
	if strings.Contains(typeName, ":") {
		return fmt.Errorf("%w: %s", ErrInvalidTypeName, typeName)
	}
	if ctor == nil {
		return ErrNilConstructor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	types, ok := c.modules[module]
	if !ok {
		types = make(map[string]Constructor)
		c.modules[module] = types
	}
	if _, exists := types[typeName]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, BuildEntryPoint(module, typeName))
	}
	types[typeName] = ctor
	return nil
}

// MustRegister is like Register but panics on error. Intended for init().
func (c *Catalog) MustRegister(module, typeName string, ctor Constructor) {
	if err := c.Register(module, typeName, ctor); err != nil {
		panic(err)
	}
}

// Resolve looks up the constructor for an entry point reference.
func (c *Catalog) Resolve(entryPoint string) (Constructor, error) {
	ep, err := ParseEntryPoint(entryPoint)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	types, ok := c.modules[ep.Module]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrEntryPointResolution, ErrUnknownModule, ep.Module)
	}
	ctor, ok := types[ep.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrEntryPointResolution, ErrUnknownCatalogType, ep)
	}
	return ctor, nil
}

// Modules returns the registered module paths, sorted alphabetically.
func (c *Catalog) Modules() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	modules := make([]string, 0, len(c.modules))
	for module := range c.modules {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	return modules
}

// Types returns the type names registered under module, sorted alphabetically.
func (c *Catalog) Types(module string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	types := make([]string, 0, len(c.modules[module]))
	for name := range c.modules[module] {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
