// Package manifest loads environment registrations from YAML files.
//
// A manifest lists registrations in the order they must be applied, so v0
// of a name always precedes v1:
//
//	environments:
//	  - id: Fake-v0
//	    entry_point: github.com/zjrosen/envreg/internal/envs/fakes:FakeEnvironment
//	  - id: Fake-v1
//	    entry_point: github.com/zjrosen/envreg/internal/envs/fakes:FakeEnvironment
//	    kwargs:
//	      time_limit: 20
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/log"
)

// ErrMissingID is returned for an entry without an id.
var ErrMissingID = errors.New("manifest entry is missing an id")

// File is the root structure of a manifest.
type File struct {
	Environments []EnvironmentDef `yaml:"environments"`
}

// EnvironmentDef defines a single registration.
type EnvironmentDef struct {
	ID         string         `yaml:"id"`          // e.g., "Fake-v0"
	EntryPoint string         `yaml:"entry_point"` // e.g., "github.com/zjrosen/envreg/internal/envs/fakes:FakeEnvironment"
	Kwargs     map[string]any `yaml:"kwargs"`      // Default constructor arguments
}

// Registrar is the subset of the registry used to apply definitions.
type Registrar interface {
	Register(id, entryPoint string, kwargs registry.Kwargs) error
}

// Parse decodes manifest content. source names the content in errors.
func Parse(content []byte, source string) ([]EnvironmentDef, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	for i, def := range file.Environments {
		if def.ID == "" {
			return nil, fmt.Errorf("%s: entry %d: %w", source, i, ErrMissingID)
		}
	}
	return file.Environments, nil
}

// Load reads and parses a manifest from fsys.
func Load(fsys fs.FS, path string) ([]EnvironmentDef, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defs, err := Parse(content, path)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatManifest, "loaded manifest", "path", path, "environments", len(defs))
	return defs, nil
}

// LoadFiles reads manifests from disk, concatenating their definitions in
// argument order.
func LoadFiles(paths []string) ([]EnvironmentDef, error) {
	var all []EnvironmentDef
	for _, path := range paths {
		clean := filepath.Clean(path)
		defs, err := Load(os.DirFS(filepath.Dir(clean)), filepath.Base(clean))
		if err != nil {
			return nil, err
		}
		all = append(all, defs...)
	}
	return all, nil
}

// Apply registers defs in order, stopping at the first failure. Earlier
// definitions stay registered.
func Apply(reg Registrar, defs []EnvironmentDef) error {
	for _, def := range defs {
		if err := reg.Register(def.ID, def.EntryPoint, registry.Kwargs(def.Kwargs)); err != nil {
			log.ErrorErr(log.CatManifest, "manifest registration failed", err, "id", def.ID)
			return fmt.Errorf("apply %s: %w", def.ID, err)
		}
		log.Debug(log.CatManifest, "registered environment", "id", def.ID, "entry_point", def.EntryPoint)
	}
	return nil
}
