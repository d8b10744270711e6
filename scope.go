package weld

import (
	"github.com/xraph/weld/errors"
)

// Scope is one node in the scope tree. It owns its bindings, its children,
// the set of keys still awaiting resolution, pending factory modules, and
// the member-injection requests accumulated for it. The parent reference is
// set once at creation and never changes; the root has none.
//
// All collections preserve insertion order so that two pipeline runs over
// identical declarations produce identical output.
type Scope struct {
	name   string
	parent *Scope

	children []*Scope

	bindings     map[Key]BindingEntry
	bindingOrder []Key

	unresolved    *keySet
	memberInjects *keySet
	factories     []*FactoryModule

	resolved bool
}

// NewRootScope creates the root of a scope tree.
func NewRootScope(name string) *Scope {
	return &Scope{
		name:          name,
		bindings:      make(map[Key]BindingEntry),
		unresolved:    newKeySet(),
		memberInjects: newKeySet(),
	}
}

// NewChild creates a private child scope under this one.
func (s *Scope) NewChild(name string) *Scope {
	child := &Scope{
		name:          name,
		parent:        s,
		bindings:      make(map[Key]BindingEntry),
		unresolved:    newKeySet(),
		memberInjects: newKeySet(),
	}
	s.children = append(s.children, child)
	return child
}

// Name returns the scope's name.
func (s *Scope) Name() string { return s.name }

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Children returns the child scopes in creation order.
func (s *Scope) Children() []*Scope { return s.children }

// AddBinding records a binding entry for a key. Binding a key twice in one
// scope is an error, never an overwrite. The binding's dependencies are
// queued as unresolved so the resolver can account for them.
func (s *Scope) AddBinding(key Key, entry BindingEntry) error {
	if _, exists := s.bindings[key]; exists {
		return errors.ErrDuplicateBinding(key.String(), s.name)
	}
	s.bindings[key] = entry
	s.bindingOrder = append(s.bindingOrder, key)

	for _, dep := range entry.Binding.Dependencies() {
		s.unresolved.Add(dep)
	}
	return nil
}

// Binding returns the entry bound to the key in this scope only.
func (s *Scope) Binding(key Key) (BindingEntry, bool) {
	entry, ok := s.bindings[key]
	return entry, ok
}

// IsBound reports whether the key is bound in this scope only.
func (s *Scope) IsBound(key Key) bool {
	_, ok := s.bindings[key]
	return ok
}

// Keys returns the bound keys in insertion order.
func (s *Scope) Keys() []Key {
	out := make([]Key, len(s.bindingOrder))
	copy(out, s.bindingOrder)
	return out
}

// findBound walks from this scope to the root and reports whether any
// scope on the path binds the key. The nearest match wins.
func (s *Scope) findBound(key Key) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.IsBound(key) {
			return true
		}
	}
	return false
}

// AddUnresolved queues a key for implicit resolution.
func (s *Scope) AddUnresolved(key Key) {
	s.unresolved.Add(key)
}

// UnresolvedKeys returns the queued keys in insertion order.
func (s *Scope) UnresolvedKeys() []Key {
	return s.unresolved.Keys()
}

// AddMemberInjectRequest records that a type needs member injection once
// materialized. Requests form a set, so the same type requested by several
// factories collapses to one entry.
func (s *Scope) AddMemberInjectRequest(key Key) {
	s.memberInjects.Add(key)
}

// AddMemberInjectRequests records several member-injection requests.
func (s *Scope) AddMemberInjectRequests(keys []Key) {
	for _, key := range keys {
		s.memberInjects.Add(key)
	}
}

// MemberInjectRequests returns the requests in insertion order.
func (s *Scope) MemberInjectRequests() []Key {
	return s.memberInjects.Keys()
}

// AddFactoryModule queues a factory module for expansion during resolution.
func (s *Scope) AddFactoryModule(f *FactoryModule) {
	s.factories = append(s.factories, f)
}

// factoryModules returns the pending factory modules in declaration order.
func (s *Scope) factoryModules() []*FactoryModule {
	return s.factories
}

// takeFactoryModules returns the pending factory modules and empties the
// queue, so expansion consumes each factory exactly once.
func (s *Scope) takeFactoryModules() []*FactoryModule {
	pending := s.factories
	s.factories = nil
	return pending
}

// Resolved reports whether this scope's own resolution pass has run.
func (s *Scope) Resolved() bool { return s.resolved }

// beginResolve marks the scope resolved. Returns false if it already was,
// making resolution idempotent.
func (s *Scope) beginResolve() bool {
	if s.resolved {
		return false
	}
	s.resolved = true
	return true
}
