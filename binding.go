package weld

import (
	"reflect"
)

// BindingKind discriminates the binding variants.
type BindingKind int

const (
	// KindTarget delegates a key to another key's binding.
	KindTarget BindingKind = iota
	// KindProviderInstance produces values through a provider supplied by a module.
	KindProviderInstance
	// KindProviderType delegates production to a bound provider type.
	KindProviderType
	// KindFactory is synthesized from a factory module's products.
	KindFactory
	// KindConstructor is an implicit just-in-time binding on a concrete type.
	KindConstructor
	// KindInjector is the injector's binding to itself.
	KindInjector
)

// String returns a human-readable representation of the binding kind.
func (k BindingKind) String() string {
	switch k {
	case KindTarget:
		return "target"
	case KindProviderInstance:
		return "provider-instance"
	case KindProviderType:
		return "provider-type"
	case KindFactory:
		return "factory"
	case KindConstructor:
		return "constructor"
	case KindInjector:
		return "injector"
	default:
		return "unknown"
	}
}

// Binding describes how a key's value is produced. Implementations report
// the keys they depend on so the resolver can enqueue them.
type Binding interface {
	Kind() BindingKind
	Dependencies() []Key
}

// BindingContext carries human-readable provenance for diagnostics. It has
// no semantic weight in resolution.
type BindingContext struct {
	text string
}

// ContextForText creates a context from free text.
func ContextForText(text string) BindingContext {
	return BindingContext{text: text}
}

// ContextForModule creates a context naming the declaring module.
func ContextForModule(module string) BindingContext {
	return BindingContext{text: "declared in module " + module}
}

// String returns the provenance text.
func (c BindingContext) String() string { return c.text }

// BindingEntry pairs a binding with its provenance.
type BindingEntry struct {
	Binding Binding
	Context BindingContext
}

// TargetBinding binds a key to a target key, typically an interface to its
// implementation.
type TargetBinding struct {
	Target Key
}

func (b *TargetBinding) Kind() BindingKind { return KindTarget }

func (b *TargetBinding) Dependencies() []Key { return []Key{b.Target} }

// ProviderInstanceBinding produces values by calling a provider supplied by
// the declaring module. Requires lists the keys the provider consumes.
type ProviderInstanceBinding struct {
	Provider func() any
	Requires []Key
}

func (b *ProviderInstanceBinding) Kind() BindingKind { return KindProviderInstance }

func (b *ProviderInstanceBinding) Dependencies() []Key { return b.Requires }

// ProviderTypeBinding delegates production to a bound provider type.
type ProviderTypeBinding struct {
	Provider Key
}

func (b *ProviderTypeBinding) Kind() BindingKind { return KindProviderType }

func (b *ProviderTypeBinding) Dependencies() []Key { return []Key{b.Provider} }

// ConstructorBinding is an implicit just-in-time binding for a concrete
// type. Params are the keys of the type's injected fields.
type ConstructorBinding struct {
	Type   reflect.Type
	Params []Key
}

func (b *ConstructorBinding) Kind() BindingKind { return KindConstructor }

func (b *ConstructorBinding) Dependencies() []Key { return b.Params }

// FactoryProduct maps a key returned by a factory method to the concrete
// implementation the factory manufactures for it.
type FactoryProduct struct {
	Returned       Key
	Implementation Key
}

// FactoryBinding is synthesized for a factory module's own key.
type FactoryBinding struct {
	Factory  Key
	Products []FactoryProduct
}

func (b *FactoryBinding) Kind() BindingKind { return KindFactory }

func (b *FactoryBinding) Dependencies() []Key {
	deps := make([]Key, 0, len(b.Products))
	for _, p := range b.Products {
		deps = append(deps, p.Implementation)
	}
	return deps
}

// InjectorBinding is the special binding of the injector to itself.
type InjectorBinding struct {
	Injector Key
}

func (b *InjectorBinding) Kind() BindingKind { return KindInjector }

func (b *InjectorBinding) Dependencies() []Key { return nil }
