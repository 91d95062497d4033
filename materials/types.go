package materials

import (
	"slices"
	"sync/atomic"
)

// Type is an index into the material type registry, e.g. "Wood" or "Metal".
type Type int

// NoType marks a disabled fallback or a body without a category.
const NoType Type = -1

// Registry is the ordered, immutable table of material type names.
type Registry struct {
	names []string
	keys  map[string]Type
}

// NewRegistry copies names into a new registry. Later duplicates of a name
// keep their index but Key resolves to the first one.
func NewRegistry(names []string) *Registry {
	r := &Registry{
		names: slices.Clone(names),
		keys:  make(map[string]Type, len(names)),
	}
	for i, n := range r.names {
		if _, ok := r.keys[n]; !ok {
			r.keys[n] = Type(i)
		}
	}
	return r
}

// Name returns the type name for key, or "" when the key is out of range.
// Display code relies on the empty string, so this must never panic.
func (r *Registry) Name(key Type) string {
	if r == nil || key < 0 || int(key) >= len(r.names) {
		return ""
	}
	return r.names[key]
}

func (r *Registry) Has(key Type) bool {
	return r != nil && key >= 0 && int(key) < len(r.names)
}

func (r *Registry) Key(name string) (Type, bool) {
	if r == nil {
		return NoType, false
	}
	k, ok := r.keys[name]
	return k, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns a copy of the type names in key order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

var registry atomic.Pointer[Registry]

func init() {
	registry.Store(NewRegistry(nil))
}

// SetTypes installs the process-wide registry. Call it once at startup.
func SetTypes(r *Registry) {
	if r == nil {
		r = NewRegistry(nil)
	}
	registry.Store(r)
}

// Types returns the process-wide registry.
func Types() *Registry {
	return registry.Load()
}

// TypeName looks key up in the process-wide registry.
func TypeName(key Type) string {
	return Types().Name(key)
}
