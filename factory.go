package weld

import (
	"fmt"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// FactoryModule describes a factory interface whose methods manufacture
// instances. Its own binding and the member-injection requests for its
// products are synthesized during resolution.
type FactoryModule struct {
	// ModuleName is the declaring module, for provenance.
	ModuleName string
	// Key is the factory interface's own key.
	Key Key
	// Products maps each key returned by a factory method to the concrete
	// implementation manufactured for it.
	Products []FactoryProduct
}

// newFactoryBinding validates a factory module's configuration and builds
// the synthesized binding for its key.
func newFactoryBinding(f *FactoryModule) (*FactoryBinding, error) {
	if f.Key.IsZero() {
		return nil, fmt.Errorf("factory has no key")
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("factory declares no products")
	}

	for _, p := range f.Products {
		if p.Returned.IsZero() || p.Implementation.IsZero() {
			return nil, fmt.Errorf("factory product with missing key")
		}
		if !p.Implementation.Type().AssignableTo(p.Returned.Type()) {
			return nil, fmt.Errorf("implementation %s is not assignable to %s",
				p.Implementation, p.Returned)
		}
	}

	return &FactoryBinding{Factory: f.Key, Products: f.Products}, nil
}

// factoryExpander turns a scope's pending factory modules into synthesized
// bindings plus member-injection requests.
type factoryExpander struct {
	log      logger.Logger
	diags    *Collector
	implicit *overrideSet
}

// expand drains the scope's pending factory modules. A misconfigured
// factory aborts that factory only; the loop continues.
func (e *factoryExpander) expand(s *Scope) {
	for _, f := range s.takeFactoryModules() {
		binding, err := newFactoryBinding(f)
		if err != nil {
			e.diags.Add(errors.ErrFactoryConfiguration(f.Key.String(), err))
			continue
		}

		e.implicit.record(f.Key)
		entry := BindingEntry{
			Binding: binding,
			Context: ContextForText("bound using factory in " + f.ModuleName),
		}
		if err := s.AddBinding(f.Key, entry); err != nil {
			e.diags.Add(err)
			continue
		}

		// Implementations created by any factory are member-injected through
		// one central request set, so two factories producing the same type
		// yield a single request.
		impls := make([]Key, 0, len(f.Products))
		for _, p := range f.Products {
			impls = append(impls, p.Implementation)
		}
		s.AddMemberInjectRequests(impls)

		e.log.Debug("expanded factory module",
			logger.String("factory", f.Key.String()),
			logger.String("scope", s.Name()),
			logger.Int("products", len(f.Products)))
	}
}
