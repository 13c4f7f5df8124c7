// Package envs wires the built-in environments into a catalog and registry.
package envs

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/envs/fakes"
	"github.com/zjrosen/envreg/internal/manifest"
)

//go:embed registry.yaml
var builtinManifest []byte

// Catalog returns a new catalog holding every built-in environment type.
func Catalog() (*registry.Catalog, error) {
	catalog := registry.NewCatalog()
	if err := AddToCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// AddToCatalog adds the built-in environment types to catalog.
func AddToCatalog(catalog *registry.Catalog) error {
	if err := fakes.Register(catalog); err != nil {
		return fmt.Errorf("register fakes: %w", err)
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultErr  error
)

// AddToDefaultCatalog adds the built-in types to registry.DefaultCatalog.
// Only the first call does any work.
func AddToDefaultCatalog() error {
	defaultOnce.Do(func() {
		defaultErr = AddToCatalog(registry.DefaultCatalog())
	})
	return defaultErr
}

// Builtins returns the embedded registrations in application order.
func Builtins() ([]manifest.EnvironmentDef, error) {
	return manifest.Parse(builtinManifest, "builtin registry.yaml")
}

// RegisterBuiltins registers the embedded environments with reg.
func RegisterBuiltins(reg manifest.Registrar) error {
	defs, err := Builtins()
	if err != nil {
		return err
	}
	return manifest.Apply(reg, defs)
}
