package weld

import (
	"reflect"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// injectTag marks struct fields that an implicit constructor binding must
// satisfy. The tag value, if any, is the field key's qualifier.
const injectTag = "inject"

// resolver drives the bottom-up resolution pass. Every child subtree is
// fully resolved before its parent starts, because a child's implicit
// bindings can escalate new requirements upward and the parent must see
// the complete set before its own pass.
type resolver struct {
	log      logger.Logger
	diags    *Collector
	expander *factoryExpander
	implicit *overrideSet
}

// resolveAll performs the post-order traversal: children first, then
// factory expansion on the node, then the node's own unresolved keys.
func (r *resolver) resolveAll(s *Scope) {
	for _, child := range s.Children() {
		r.resolveAll(child)
	}
	r.expander.expand(s)
	r.resolveScope(s)
}

// resolveScope drains the scope's unresolved set in insertion order. The
// set may grow while draining: synthesized bindings queue their own
// dependencies. A second call on the same scope is a no-op.
func (r *resolver) resolveScope(s *Scope) {
	if !s.beginResolve() {
		return
	}

	for i := 0; i < s.unresolved.Len(); i++ {
		key := s.unresolved.At(i)

		// Bound here or in an ancestor: the nearest scope on the way to the
		// root that binds the key satisfies it.
		if s.findBound(key) {
			continue
		}

		if binding, ok := r.synthesize(key); ok {
			r.implicit.record(key)
			entry := BindingEntry{Binding: binding, Context: ContextForText("implicit binding")}
			if err := s.AddBinding(key, entry); err != nil {
				r.diags.Add(err)
			}
			continue
		}

		if parent := s.Parent(); parent != nil {
			parent.AddUnresolved(key)
			r.log.Debug("escalating unresolved key",
				logger.String("key", key.String()),
				logger.String("from", s.Name()),
				logger.String("to", parent.Name()))
			continue
		}

		r.diags.Add(errors.ErrMissingBinding(key.String(), s.Name()))
	}

	r.log.Debug("scope resolved",
		logger.String("scope", s.Name()),
		logger.Int("bindings", len(s.bindingOrder)))
}

// synthesize attempts a just-in-time constructor binding for the key.
// Only unqualified keys over named concrete types (struct or pointer to
// struct) qualify; everything else must be bound explicitly or escalate.
func (r *resolver) synthesize(key Key) (Binding, bool) {
	if key.Qualifier() != "" {
		return nil, false
	}

	t := key.Type()
	structType := t
	if t.Kind() == reflect.Ptr {
		structType = t.Elem()
	}
	if structType.Kind() != reflect.Struct || structType.Name() == "" {
		return nil, false
	}

	return &ConstructorBinding{Type: t, Params: injectedFieldKeys(structType)}, true
}

// injectedFieldKeys returns the keys of the struct's fields carrying the
// inject tag, in field order.
func injectedFieldKeys(t reflect.Type) []Key {
	var keys []Key
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		qualifier, ok := f.Tag.Lookup(injectTag)
		if !ok {
			continue
		}
		keys = append(keys, QualifiedKeyFor(f.Type, qualifier))
	}
	return keys
}
