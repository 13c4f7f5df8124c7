// Package registry implements the domain layer for the environment registry.
//
// This package follows the same rules as the rest of the domain layer:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the EnvSpec entity and the Identifier/EntryPoint value types
//   - Implements the versioning rules and the make protocol
//   - Has no knowledge of infrastructure concerns (YAML manifests, caching, tracing)
//
// # Identifiers
//
// Environments are addressed by {name}-v{version}, e.g. "Snake-v1". The
// version suffix is the last "-v<digits>" so names may contain hyphens:
// "Env-test-v10" parses to ("Env-test", 10).
//
// # Versioning Rules
//
// For each base name the registered versions form a contiguous run from 0:
//   - The first registration must be v0
//   - Each later registration must be exactly latest+1
//   - An identifier can never be registered twice
//
// Violations are reported as *RegistrationError, which matches ErrRegistration
// and one of ErrAlreadyRegistered, ErrNotFirstVersion or ErrNonSequentialVersion.
//
// # Construction
//
// Make resolves a spec's entry point ({module}:{type}) through a Resolver and
// calls the resulting Constructor with the stored kwargs overlaid by the
// caller's. Catalog is the in-process Resolver; environment packages add their
// constructors to it.
//
// # Process-wide Registry
//
// Default, Register, Make and RegisteredEnvironments operate on a single
// registry shared by the process. SetDefault swaps it for tests.
package registry
