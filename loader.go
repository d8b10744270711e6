package weld

import (
	"fmt"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// moduleLoader walks an injector definition and its ancestors, collecting
// distinct module declarations in declaration order and instantiating each
// exactly once.
type moduleLoader struct {
	log   logger.Logger
	diags *Collector
}

// load returns the instantiated modules. A module whose constructor fails
// is reported and skipped; the load itself never aborts.
func (l *moduleLoader) load(def *InjectorDef) []Module {
	var modules []Module
	seen := make(map[string]struct{})
	visited := make(map[*InjectorDef]struct{})
	l.collect(def, &modules, seen, visited)
	return modules
}

func (l *moduleLoader) collect(def *InjectorDef, out *[]Module, seen map[string]struct{}, visited map[*InjectorDef]struct{}) {
	if _, ok := visited[def]; ok {
		return
	}
	visited[def] = struct{}{}

	for _, desc := range def.Modules {
		if _, ok := seen[desc.ID]; ok {
			continue
		}

		m, err := l.instantiate(desc)
		if err != nil {
			l.diags.Add(err)
			continue
		}

		seen[desc.ID] = struct{}{}
		*out = append(*out, m)
	}

	for _, parent := range def.Extends {
		l.collect(parent, out, seen, visited)
	}
}

// instantiate calls the descriptor's constructor handle, converting panics
// into instantiation errors.
func (l *moduleLoader) instantiate(desc ModuleDescriptor) (m Module, err error) {
	if desc.New == nil {
		return nil, errors.ErrModuleInstantiation(desc.ID, errors.New("no constructor registered"))
	}

	defer func() {
		if rec := recover(); rec != nil {
			m = nil
			err = errors.ErrModuleInstantiation(desc.ID, fmt.Errorf("constructor panicked: %v", rec))
		}
	}()

	m, ctorErr := desc.New()
	if ctorErr != nil {
		return nil, errors.ErrModuleInstantiation(desc.ID, ctorErr)
	}
	if m == nil {
		return nil, errors.ErrModuleInstantiation(desc.ID, errors.New("constructor returned nil"))
	}
	return m, nil
}
