package registry

import (
	"fmt"
	"strings"
)

// EntryPoint is a parsed constructor reference.
// Format: {module-path}:{TypeName}
// Example: github.com/zjrosen/envreg/internal/envs/fakes:FakeEnvironment
type EntryPoint struct {
	Module string
	Type   string
}

// String formats the entry point back into its reference form.
func (e EntryPoint) String() string {
	return BuildEntryPoint(e.Module, e.Type)
}

// ParseEntryPoint splits a reference on its last colon.
func ParseEntryPoint(ref string) (EntryPoint, error) {
	if ref == "" {
		return EntryPoint{}, fmt.Errorf("%w: empty entry point", ErrEntryPointResolution)
	}

	idx := strings.LastIndex(ref, ":")
	if idx < 0 {
		return EntryPoint{}, fmt.Errorf("%w: %q is missing the ':' separator", ErrEntryPointResolution, ref)
	}

	module, typeName := ref[:idx], ref[idx+1:]
	if module == "" || typeName == "" {
		return EntryPoint{}, fmt.Errorf("%w: %q must be {module}:{type}", ErrEntryPointResolution, ref)
	}

	return EntryPoint{Module: module, Type: typeName}, nil
}

// BuildEntryPoint constructs a reference string from its components.
func BuildEntryPoint(module, typeName string) string {
	return module + ":" + typeName
}
