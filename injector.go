package weld

import (
	"fmt"
	"reflect"

	"github.com/xraph/weld/errors"
)

// Module is a declarative unit contributing bindings to a scope. The
// element sequence it produces is the boundary between module authoring and
// this engine; how a module builds its elements is out of scope here.
type Module interface {
	Name() string
	Elements() []Element
}

// NewModule creates a module from a fixed element sequence.
func NewModule(name string, elements ...Element) Module {
	return &staticModule{name: name, elements: elements}
}

type staticModule struct {
	name     string
	elements []Element
}

func (m *staticModule) Name() string { return m.name }

func (m *staticModule) Elements() []Element { return m.elements }

// ModuleDescriptor identifies a declared module and knows how to
// instantiate it once. New replaces reflective constructor access with an
// explicit constructor handle.
type ModuleDescriptor struct {
	ID  string
	New func() (Module, error)
}

// MethodDef describes one injector method: a provision method (no params,
// non-void return) or a member-injection method (one param, void return).
// A nil Return means void. Qualifier applies to the provisioned key.
type MethodDef struct {
	Name      string
	Params    []reflect.Type
	Return    reflect.Type
	Qualifier string
}

// isProvision reports whether the method has provision shape.
func (m MethodDef) isProvision() bool {
	return len(m.Params) == 0 && m.Return != nil
}

// isMemberInjection reports whether the method has member-injection shape.
func (m MethodDef) isMemberInjection() bool {
	return len(m.Params) == 1 && m.Return == nil
}

// provisionKey returns the key provisioned by a provision method.
func (m MethodDef) provisionKey() Key {
	return QualifiedKeyFor(m.Return, m.Qualifier)
}

// InjectorDef is the static declaration of an injector: its methods, the
// modules attached to it, and the injector definitions it extends. It is
// the explicit descriptor replacing annotation-driven discovery.
type InjectorDef struct {
	Name    string
	Type    reflect.Type
	Methods []MethodDef
	Modules []ModuleDescriptor
	Extends []*InjectorDef
}

// SelfKey returns the key under which the injector binds itself. Zero if
// the definition carries no interface type.
func (d *InjectorDef) SelfKey() Key {
	if d.Type == nil {
		return Key{}
	}
	return KeyFor(d.Type)
}

// AllMethods returns the injector's methods including inherited ones, in
// declaration order, deduplicated by name. A definition reachable through
// several inheritance paths contributes its methods once.
func (d *InjectorDef) AllMethods() []MethodDef {
	var out []MethodDef
	seen := make(map[string]struct{})
	visited := make(map[*InjectorDef]struct{})
	d.collectMethods(&out, seen, visited)
	return out
}

func (d *InjectorDef) collectMethods(out *[]MethodDef, seen map[string]struct{}, visited map[*InjectorDef]struct{}) {
	if _, ok := visited[d]; ok {
		return
	}
	visited[d] = struct{}{}

	for _, m := range d.Methods {
		if _, ok := seen[m.Name]; ok {
			continue
		}
		seen[m.Name] = struct{}{}
		*out = append(*out, m)
	}
	for _, parent := range d.Extends {
		parent.collectMethods(out, seen, visited)
	}
}

// DescribeInjector extracts method descriptors from a Go interface type.
// This is the reflection boundary: the rest of the engine only sees
// MethodDefs. Methods with more than one return value cannot be described.
func DescribeInjector(t reflect.Type) ([]MethodDef, error) {
	if t == nil {
		return nil, errors.ErrInvalidInjector("<nil>", []string{"nil type"})
	}
	if t.Kind() != reflect.Interface {
		return nil, errors.ErrInvalidInjector(t.String(), []string{"not an interface type"})
	}

	var methods []MethodDef
	var reasons []string
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		mt := m.Type

		if mt.NumOut() > 1 {
			reasons = append(reasons, fmt.Sprintf("method %s has %d return values", m.Name, mt.NumOut()))
			continue
		}

		def := MethodDef{Name: m.Name}
		for p := 0; p < mt.NumIn(); p++ {
			def.Params = append(def.Params, mt.In(p))
		}
		if mt.NumOut() == 1 {
			def.Return = mt.Out(0)
		}
		methods = append(methods, def)
	}

	if len(reasons) > 0 {
		return methods, errors.ErrInvalidInjector(t.String(), reasons)
	}
	return methods, nil
}
