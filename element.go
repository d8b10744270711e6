package weld

// Element is one declarative statement contributed by a module: a bind
// statement, a provider declaration, a private-scope boundary, or a factory
// declaration. The set of variants is closed; the visitor dispatches over
// them exhaustively.
type Element interface {
	element()
}

// BindElement records an explicit binding for a key.
type BindElement struct {
	Key     Key
	Binding Binding
}

func (BindElement) element() {}

// ProvideElement declares a provider for a key. Requires lists the keys the
// provider consumes when producing a value.
type ProvideElement struct {
	Key      Key
	Provider func() any
	Requires []Key
}

func (ProvideElement) element() {}

// PrivateElement opens a private scope populated by the nested module. The
// nested module's bindings are hidden from the enclosing scope.
type PrivateElement struct {
	Module Module
}

func (PrivateElement) element() {}

// FactoryElement attaches a factory module to the current scope. Its
// bindings are synthesized during resolution, not while visiting.
type FactoryElement struct {
	Factory *FactoryModule
}

func (FactoryElement) element() {}
