package weld

import (
	"reflect"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// methodValidator checks every injector method against the two permitted
// shapes: provision (no parameters, non-void return) and member injection
// (one nominal parameter, void return). All violations are collected
// before the pipeline checkpoints.
type methodValidator struct {
	log   logger.Logger
	diags *Collector
}

func (v *methodValidator) validate(def *InjectorDef) {
	for _, m := range def.AllMethods() {
		switch {
		case len(m.Params) > 1:
			v.diags.Add(errors.ErrMethodSignature(m.Name, "cannot have more than one parameter"))

		case len(m.Params) == 1:
			if !isNominal(m.Params[0]) {
				v.diags.Add(errors.ErrMethodSignature(m.Name, "parameter type must be a named struct or interface"))
			}
			if m.Return != nil {
				v.diags.Add(errors.ErrMethodSignature(m.Name, "with a parameter must have a void return type"))
			}

		default:
			if m.Return == nil {
				v.diags.Add(errors.ErrMethodSignature(m.Name, "with no parameters cannot return void"))
			}
		}
	}
}

// isNominal reports whether the type is a named struct, pointer to a named
// struct, or named interface. Primitives, slices, maps, funcs, and
// anonymous types cannot be member-injected.
func isNominal(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Interface:
		return t.Name() != ""
	default:
		return false
	}
}

// GraphValidator is the external consistency check run over the finished
// binding set. It receives the full module sequence plus an override module
// pre-declaring every key this engine synthesized on its own authority, so
// it does not re-report those as missing.
type GraphValidator interface {
	Validate(modules []Module, override Module) error
}

// overrideSet accumulates the keys bound implicitly during the pipeline:
// the injector-self binding, synthesized factory bindings, and just-in-time
// constructor bindings.
type overrideSet struct {
	keys *keySet
}

func newOverrideSet() *overrideSet {
	return &overrideSet{keys: newKeySet()}
}

func (o *overrideSet) record(key Key) {
	o.keys.Add(key)
}

// Module renders the recorded keys as a module whose elements pre-declare
// each key as bound.
func (o *overrideSet) Module() Module {
	keys := o.keys.Keys()
	elements := make([]Element, 0, len(keys))
	for _, key := range keys {
		elements = append(elements, BindElement{
			Key:     key,
			Binding: &ConstructorBinding{Type: key.Type()},
		})
	}
	return NewModule("weld.synthesized", elements...)
}
