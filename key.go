package weld

import (
	"reflect"
)

// Key identifies a unique bindable dependency: a type plus an optional
// qualifier discriminating multiple bindings of the same type.
//
// Key is intentionally a value type (not a pointer) so it's safe to copy,
// compare, and use as a map key.
type Key struct {
	t         reflect.Type
	qualifier string
}

// KeyFor creates a key for the given type with no qualifier.
func KeyFor(t reflect.Type) Key {
	return Key{t: t}
}

// QualifiedKeyFor creates a key for the given type and qualifier.
func QualifiedKeyFor(t reflect.Type, qualifier string) Key {
	return Key{t: t, qualifier: qualifier}
}

// KeyOf creates an unqualified key for T.
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// QualifiedKeyOf creates a qualified key for T.
func QualifiedKeyOf[T any](qualifier string) Key {
	return Key{t: reflect.TypeOf((*T)(nil)).Elem(), qualifier: qualifier}
}

// Type returns the key's type. Nil for the zero Key.
func (k Key) Type() reflect.Type { return k.t }

// Qualifier returns the key's qualifier. Empty for unqualified keys.
func (k Key) Qualifier() string { return k.qualifier }

// IsZero returns true if the key is unset.
func (k Key) IsZero() bool { return k.t == nil }

// String returns a human-readable representation.
// "example.Service" or "example.Service@replica"
func (k Key) String() string {
	if k.t == nil {
		return "<zero key>"
	}
	if k.qualifier == "" {
		return k.t.String()
	}
	return k.t.String() + "@" + k.qualifier
}

// keySet is an insertion-ordered set of keys. Iteration order is the order
// keys were first added, which keeps pipeline runs deterministic.
type keySet struct {
	order []Key
	seen  map[Key]struct{}
}

func newKeySet() *keySet {
	return &keySet{seen: make(map[Key]struct{})}
}

// Add inserts the key if absent. Returns true if the key was added.
func (s *keySet) Add(k Key) bool {
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.order = append(s.order, k)
	return true
}

// Has reports whether the key is present.
func (s *keySet) Has(k Key) bool {
	_, ok := s.seen[k]
	return ok
}

// At returns the i-th key in insertion order. The set may grow while a
// caller iterates by index; new keys land at the end.
func (s *keySet) At(i int) Key { return s.order[i] }

// Len returns the number of keys.
func (s *keySet) Len() int { return len(s.order) }

// Keys returns a copy of the keys in insertion order.
func (s *keySet) Keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}
