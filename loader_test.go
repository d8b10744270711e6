package weld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	welderrors "github.com/xraph/weld/errors"
)

func TestModuleLoader_DeclarationOrder(t *testing.T) {
	storeModule := NewModule("store")
	mailModule := NewModule("mail")
	def := &InjectorDef{
		Name:    "app",
		Modules: []ModuleDescriptor{descriptor(storeModule), descriptor(mailModule)},
	}

	diags := testCollector(t)
	loader := &moduleLoader{log: testLogger(t), diags: diags}

	modules := loader.load(def)
	require.Len(t, modules, 2)
	assert.Equal(t, "store", modules[0].Name())
	assert.Equal(t, "mail", modules[1].Name())
	assert.Zero(t, diags.Count())
}

func TestModuleLoader_DiamondInstantiatesOnce(t *testing.T) {
	instantiations := 0
	shared := ModuleDescriptor{
		ID: "shared",
		New: func() (Module, error) {
			instantiations++
			return NewModule("shared"), nil
		},
	}

	base := &InjectorDef{Name: "base", Modules: []ModuleDescriptor{shared}}
	left := &InjectorDef{Name: "left", Extends: []*InjectorDef{base}}
	right := &InjectorDef{Name: "right", Extends: []*InjectorDef{base}}
	top := &InjectorDef{Name: "top", Modules: []ModuleDescriptor{shared}, Extends: []*InjectorDef{left, right}}

	loader := &moduleLoader{log: testLogger(t), diags: testCollector(t)}

	modules := loader.load(top)
	require.Len(t, modules, 1)
	assert.Equal(t, 1, instantiations)
}

func TestModuleLoader_AncestorModulesFollowOwn(t *testing.T) {
	base := &InjectorDef{Name: "base", Modules: []ModuleDescriptor{descriptor(NewModule("base-mod"))}}
	top := &InjectorDef{
		Name:    "top",
		Modules: []ModuleDescriptor{descriptor(NewModule("top-mod"))},
		Extends: []*InjectorDef{base},
	}

	loader := &moduleLoader{log: testLogger(t), diags: testCollector(t)}

	modules := loader.load(top)
	require.Len(t, modules, 2)
	assert.Equal(t, "top-mod", modules[0].Name())
	assert.Equal(t, "base-mod", modules[1].Name())
}

func TestModuleLoader_SkipsFailingModules(t *testing.T) {
	failing := ModuleDescriptor{
		ID:  "broken",
		New: func() (Module, error) { return nil, welderrors.New("boom") },
	}
	panicking := ModuleDescriptor{
		ID:  "panicking",
		New: func() (Module, error) { panic("ctor exploded") },
	}
	nilReturning := ModuleDescriptor{
		ID:  "nil",
		New: func() (Module, error) { return nil, nil },
	}
	missingCtor := ModuleDescriptor{ID: "no-ctor"}
	healthy := descriptor(NewModule("healthy"))

	def := &InjectorDef{
		Name:    "app",
		Modules: []ModuleDescriptor{failing, panicking, nilReturning, missingCtor, healthy},
	}

	diags := testCollector(t)
	loader := &moduleLoader{log: testLogger(t), diags: diags}

	modules := loader.load(def)

	// Every failure is collected, siblings still load.
	require.Len(t, modules, 1)
	assert.Equal(t, "healthy", modules[0].Name())
	assert.Equal(t, 4, diags.Count())
	for _, d := range diags.Diagnostics() {
		assert.Equal(t, welderrors.CodeModuleInstantiation, diagCode(d.Err))
	}
}
