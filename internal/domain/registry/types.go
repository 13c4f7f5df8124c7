package registry

import (
	"maps"
	"reflect"
)

// Kwargs holds keyword arguments passed to an environment constructor.
type Kwargs map[string]any

// Clone returns a deep copy. Slices, maps and arrays nested in values are
// copied; pointers, channels and funcs are shared. A nil receiver yields an
// empty, non-nil map.
func (k Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(k))
	for key, value := range k {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	if value == nil {
		return nil
	}
	return deepCopy(reflect.ValueOf(value)).Interface()
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(deepCopy(v.Elem()))
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
		return out
	default:
		return v
	}
}

// Merge returns a deep copy of k overlaid with overrides.
// Keys present in overrides win. Override values are not copied.
func (k Kwargs) Merge(overrides Kwargs) Kwargs {
	out := k.Clone()
	maps.Copy(out, overrides)
	return out
}

// Keys returns the argument names in no particular order.
func (k Kwargs) Keys() []string {
	keys := make([]string, 0, len(k))
	for key := range k {
		keys = append(keys, key)
	}
	return keys
}

// EnvSpec describes a registered environment: its identifier, where its
// constructor lives, and the default keyword arguments captured at
// registration time.
type EnvSpec struct {
	id         string // e.g., "Snake-v1"
	name       string // e.g., "Snake"
	version    int    // e.g., 1
	entryPoint string // e.g., "github.com/zjrosen/envreg/internal/envs/fakes:FakeEnvironment"
	kwargs     Kwargs
}

// NewEnvSpec validates id and returns a spec holding a private copy of kwargs.
func NewEnvSpec(id, entryPoint string, kwargs Kwargs) (EnvSpec, error) {
	name, version, err := ParseIdentifier(id)
	if err != nil {
		return EnvSpec{}, err
	}
	return EnvSpec{
		id:         id,
		name:       name,
		version:    version,
		entryPoint: entryPoint,
		kwargs:     kwargs.Clone(),
	}, nil
}

// ID returns the full identifier.
func (s EnvSpec) ID() string {
	return s.id
}

// Name returns the base name without the version suffix.
func (s EnvSpec) Name() string {
	return s.name
}

// Version returns the parsed version number.
func (s EnvSpec) Version() int {
	return s.version
}

// EntryPoint returns the constructor reference.
func (s EnvSpec) EntryPoint() string {
	return s.entryPoint
}

// Kwargs returns a copy of the default constructor arguments.
func (s EnvSpec) Kwargs() Kwargs {
	return s.kwargs.Clone()
}
