package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry holds registered environment specs keyed by identifier.
type Registry struct {
	mu       sync.RWMutex
	resolver Resolver
	specs    map[string]EnvSpec
	order    []string         // identifiers in registration order
	versions map[string][]int // base name -> versions, ascending
}

// NewRegistry creates an empty registry that resolves entry points with
// resolver. A nil resolver is allowed; Make then fails with
// ErrEntryPointResolution.
func NewRegistry(resolver Resolver) *Registry {
	return &Registry{
		resolver: resolver,
		specs:    make(map[string]EnvSpec),
		order:    make([]string, 0),
		versions: make(map[string][]int),
	}
}

// Register validates id against the versioning rules and stores a new spec.
// On any error the registry is left unchanged.
func (r *Registry) Register(id, entryPoint string, kwargs Kwargs) error {
	spec, err := NewEnvSpec(id, entryPoint, kwargs)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkLocked(spec); err != nil {
		return err
	}

	r.specs[spec.id] = spec
	r.order = append(r.order, spec.id)
	r.versions[spec.name] = append(r.versions[spec.name], spec.version)
	return nil
}

// CheckRegistration reports whether spec could be registered right now
// without inserting it.
func (r *Registry) CheckRegistration(spec EnvSpec) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checkLocked(spec)
}

// checkLocked applies the rules in order: no override of an existing id,
// then v0 first, then exactly latest+1.
func (r *Registry) checkLocked(spec EnvSpec) error {
	if _, exists := r.specs[spec.id]; exists {
		return &RegistrationError{ID: spec.id, Cause: ErrAlreadyRegistered}
	}

	versions := r.versions[spec.name]
	if len(versions) == 0 {
		if spec.version != 0 {
			return &RegistrationError{
				ID:    spec.id,
				Cause: fmt.Errorf("%w: register %s first", ErrNotFirstVersion, FormatIdentifier(spec.name, 0)),
			}
		}
		return nil
	}

	next := versions[len(versions)-1] + 1
	if spec.version != next {
		return &RegistrationError{
			ID:    spec.id,
			Cause: fmt.Errorf("%w: expected %s", ErrNonSequentialVersion, FormatIdentifier(spec.name, next)),
		}
	}
	return nil
}

// Make builds the environment registered under id. Stored kwargs are
// overlaid with kwargs before the constructor is called. Errors returned by
// the constructor are passed through untouched.
func (r *Registry) Make(id string, kwargs Kwargs) (any, error) {
	r.mu.RLock()
	spec, ok := r.specs[id]
	resolver := r.resolver
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: no resolver configured for %s", ErrEntryPointResolution, id)
	}

	ctor, err := resolver.Resolve(spec.entryPoint)
	if err != nil {
		if !errors.Is(err, ErrEntryPointResolution) {
			err = fmt.Errorf("%w: %w", ErrEntryPointResolution, err)
		}
		return nil, fmt.Errorf("make %s: %w", id, err)
	}
	if ctor == nil {
		return nil, fmt.Errorf("make %s: %w: resolver returned no constructor for %s", id, ErrEntryPointResolution, spec.entryPoint)
	}

	return ctor(spec.kwargs.Merge(kwargs))
}

// RegisteredEnvironments returns a snapshot of all identifiers in the order
// they were registered.
func (r *Registry) RegisteredEnvironments() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Spec returns a copy of the spec registered under id.
func (r *Registry) Spec(id string) (EnvSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[id]
	if !ok {
		return EnvSpec{}, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	spec.kwargs = spec.kwargs.Clone()
	return spec, nil
}

// Versions returns the registered versions of a base name, ascending.
func (r *Registry) Versions(name string) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := make([]int, len(r.versions[name]))
	copy(versions, r.versions[name])
	sort.Ints(versions)
	return versions
}

// LatestVersion returns the highest registered version of a base name.
func (r *Registry) LatestVersion(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.versions[name]
	if len(versions) == 0 {
		return 0, false
	}
	return versions[len(versions)-1], true
}

// Len returns the number of registered environments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
