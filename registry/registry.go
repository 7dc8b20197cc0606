// Package registry keeps named entries, such as formats and erased codecs,
// in a concurrent ordered map.
package registry

import (
	"github.com/pkg/errors"
	"github.com/zhangyunhao116/skipmap"
)

// ErrDuplicate is matched by Register when the name is already taken.
var ErrDuplicate = errors.New("already registered")

// Registry maps names to values of type V. The zero value is not usable; use
// New.
type Registry[V any] struct {
	kind    string
	entries *skipmap.StringMap[V]
}

// New returns an empty registry. kind names the entries in error messages.
func New[V any](kind string) *Registry[V] {
	return &Registry[V]{kind: kind, entries: skipmap.NewString[V]()}
}

// Register adds v under name. The first registration of a name wins.
func (r *Registry[V]) Register(name string, v V) error {
	if name == "" {
		return errors.Errorf("%s: empty name", r.kind)
	}
	if _, loaded := r.entries.LoadOrStore(name, v); loaded {
		return errors.Wrapf(ErrDuplicate, "%s %q", r.kind, name)
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[V]) MustRegister(name string, v V) {
	if err := r.Register(name, v); err != nil {
		panic(err)
	}
}

// Lookup returns the value registered under name.
func (r *Registry[V]) Lookup(name string) (V, bool) {
	return r.entries.Load(name)
}

// Get is like Lookup but returns an error naming the known entries when
// name is missing.
func (r *Registry[V]) Get(name string) (V, error) {
	v, ok := r.entries.Load(name)
	if !ok {
		return v, errors.Errorf("unknown %s %q (known: %v)", r.kind, name, r.Names())
	}
	return v, nil
}

// Names returns the registered names in ascending order.
func (r *Registry[V]) Names() []string {
	names := make([]string, 0, r.entries.Len())
	r.entries.Range(func(name string, _ V) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Len returns the number of entries.
func (r *Registry[V]) Len() int { return r.entries.Len() }
