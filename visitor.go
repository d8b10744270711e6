package weld

import (
	"fmt"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// elementVisitor consumes the declarative elements produced by each module
// and records explicit binding entries into the scope tree, opening a child
// scope per private boundary. It also performs the root-scope setup: the
// injector's self binding and the unresolved keys demanded by the injector
// interface's own methods.
type elementVisitor struct {
	log      logger.Logger
	diags    *Collector
	implicit *overrideSet
}

// bindInjector registers the injector-self binding on the root scope.
func (v *elementVisitor) bindInjector(def *InjectorDef, root *Scope) {
	key := def.SelfKey()
	if key.IsZero() {
		return
	}

	entry := BindingEntry{
		Binding: &InjectorBinding{Injector: key},
		Context: ContextForText("binding for injector"),
	}
	if err := root.AddBinding(key, entry); err != nil {
		v.diags.Add(err)
		return
	}
	v.implicit.record(key)
}

// seedInjectorRequirements queues an unresolved key for every provision
// return type and member-injection parameter type declared by the
// injector's methods, inherited ones included. Member-injection parameter
// types additionally join the root's member-injection request set.
func (v *elementVisitor) seedInjectorRequirements(def *InjectorDef, root *Scope) {
	for _, m := range def.AllMethods() {
		switch {
		case m.isProvision():
			root.AddUnresolved(m.provisionKey())
		case m.isMemberInjection():
			key := KeyFor(m.Params[0])
			root.AddUnresolved(key)
			root.AddMemberInjectRequest(key)
		}
	}
}

// visitAll visits every module's elements into the root scope.
func (v *elementVisitor) visitAll(modules []Module, root *Scope) {
	for _, m := range modules {
		v.visitModule(m, root)
	}
}

// visitModule visits one module's elements into the given scope.
func (v *elementVisitor) visitModule(m Module, s *Scope) {
	name := m.Name()
	for _, el := range m.Elements() {
		switch el := el.(type) {
		case BindElement:
			if el.Key.IsZero() || el.Binding == nil {
				v.diags.Add(errors.ErrInvalidElement(name, "bind element with missing key or binding"))
				continue
			}
			v.addBinding(s, el.Key, el.Binding, name)

		case ProvideElement:
			if el.Key.IsZero() || el.Provider == nil {
				v.diags.Add(errors.ErrInvalidElement(name, "provide element with missing key or provider"))
				continue
			}
			binding := &ProviderInstanceBinding{Provider: el.Provider, Requires: el.Requires}
			v.addBinding(s, el.Key, binding, name)

		case PrivateElement:
			if el.Module == nil {
				v.diags.Add(errors.ErrInvalidElement(name, "private element with no module"))
				continue
			}
			child := s.NewChild(el.Module.Name())
			v.log.Debug("opened private scope",
				logger.String("parent", s.Name()),
				logger.String("child", child.Name()))
			v.visitModule(el.Module, child)

		case FactoryElement:
			if el.Factory == nil {
				v.diags.Add(errors.ErrInvalidElement(name, "factory element with no factory module"))
				continue
			}
			s.AddFactoryModule(el.Factory)

		default:
			v.diags.Add(errors.ErrInvalidElement(name, fmt.Sprintf("%T", el)))
		}
	}
}

func (v *elementVisitor) addBinding(s *Scope, key Key, binding Binding, module string) {
	entry := BindingEntry{Binding: binding, Context: ContextForModule(module)}
	if err := s.AddBinding(key, entry); err != nil {
		v.diags.Add(err)
	}
}
