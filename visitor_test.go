package weld

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	welderrors "github.com/xraph/weld/errors"
)

func newTestVisitor(t *testing.T) (*elementVisitor, *Collector) {
	diags := testCollector(t)
	return &elementVisitor{log: testLogger(t), diags: diags, implicit: newOverrideSet()}, diags
}

func TestElementVisitor_BindAndProvide(t *testing.T) {
	v, diags := newTestVisitor(t)
	root := NewRootScope("root")

	module := NewModule("wiring",
		BindElement{Key: KeyOf[mailerAPI](), Binding: &TargetBinding{Target: KeyOf[*smtpMailer]()}},
		ProvideElement{Key: KeyOf[*accountStore](), Provider: func() any { return &accountStore{} }},
	)
	v.visitModule(module, root)

	require.Zero(t, diags.Count())

	entry, ok := root.Binding(KeyOf[mailerAPI]())
	require.True(t, ok)
	assert.Equal(t, KindTarget, entry.Binding.Kind())
	assert.Equal(t, "declared in module wiring", entry.Context.String())

	entry, ok = root.Binding(KeyOf[*accountStore]())
	require.True(t, ok)
	assert.Equal(t, KindProviderInstance, entry.Binding.Kind())

	// The target binding queued its target as a requirement.
	assert.Contains(t, root.UnresolvedKeys(), KeyOf[*smtpMailer]())
}

func TestElementVisitor_DuplicateBindingCollected(t *testing.T) {
	v, diags := newTestVisitor(t)
	root := NewRootScope("root")

	module := NewModule("wiring",
		BindElement{Key: KeyOf[mailerAPI](), Binding: &TargetBinding{Target: KeyOf[*smtpMailer]()}},
		BindElement{Key: KeyOf[mailerAPI](), Binding: &TargetBinding{Target: KeyOf[*smtpMailer]()}},
	)
	v.visitModule(module, root)

	require.Equal(t, 1, diags.Count())
	assert.Equal(t, welderrors.CodeDuplicateBinding, diagCode(diags.Diagnostics()[0].Err))
}

func TestElementVisitor_PrivateScope(t *testing.T) {
	v, diags := newTestVisitor(t)
	root := NewRootScope("root")

	inner := NewModule("inner",
		BindElement{Key: KeyOf[*auditLog](), Binding: &ConstructorBinding{Type: typeOf[*auditLog]()}},
	)
	module := NewModule("outer", PrivateElement{Module: inner})
	v.visitModule(module, root)

	require.Zero(t, diags.Count())
	require.Len(t, root.Children(), 1)

	child := root.Children()[0]
	assert.Equal(t, "inner", child.Name())
	assert.True(t, child.IsBound(KeyOf[*auditLog]()))
	assert.False(t, root.IsBound(KeyOf[*auditLog]()), "private bindings stay hidden from the parent")
}

func TestElementVisitor_FactoryElementQueued(t *testing.T) {
	v, diags := newTestVisitor(t)
	root := NewRootScope("root")

	factory := &FactoryModule{
		ModuleName: "mail",
		Key:        KeyOf[mailerAPI](),
		Products:   []FactoryProduct{{Returned: KeyOf[mailerAPI](), Implementation: KeyOf[*smtpMailer]()}},
	}
	v.visitModule(NewModule("mail", FactoryElement{Factory: factory}), root)

	require.Zero(t, diags.Count())
	require.Len(t, root.factoryModules(), 1)
	assert.False(t, root.IsBound(KeyOf[mailerAPI]()), "factory bindings are synthesized during resolution")
}

func TestElementVisitor_MalformedElements(t *testing.T) {
	v, diags := newTestVisitor(t)
	root := NewRootScope("root")

	module := NewModule("broken",
		BindElement{},
		ProvideElement{Key: KeyOf[*accountStore]()},
		PrivateElement{},
		FactoryElement{},
	)
	v.visitModule(module, root)

	assert.Equal(t, 4, diags.Count())
	for _, d := range diags.Diagnostics() {
		assert.Equal(t, welderrors.CodeInvalidElement, diagCode(d.Err))
	}
	assert.Empty(t, root.Keys())
}

func TestElementVisitor_BindInjector(t *testing.T) {
	v, diags := newTestVisitor(t)
	root := NewRootScope("root")
	def := &InjectorDef{Name: "app", Type: typeOf[appInjector]()}

	v.bindInjector(def, root)

	require.Zero(t, diags.Count())
	entry, ok := root.Binding(KeyOf[appInjector]())
	require.True(t, ok)
	assert.Equal(t, KindInjector, entry.Binding.Kind())

	// The self binding counts as engine-authored for the override module.
	assert.True(t, v.implicit.keys.Has(KeyOf[appInjector]()))
}

func TestElementVisitor_SeedInjectorRequirements(t *testing.T) {
	v, _ := newTestVisitor(t)
	root := NewRootScope("root")
	def := &InjectorDef{
		Name: "app",
		Methods: []MethodDef{
			{Name: "Store", Return: typeOf[*accountStore]()},
			{Name: "Archive", Return: typeOf[*accountStore](), Qualifier: "archive"},
			{Name: "InjectAudit", Params: []reflect.Type{typeOf[*auditLog]()}},
			{Name: "Broken"}, // malformed, ignored by seeding
		},
	}
	v.seedInjectorRequirements(def, root)

	assert.Equal(t, []Key{
		KeyOf[*accountStore](),
		QualifiedKeyOf[*accountStore]("archive"),
		KeyOf[*auditLog](),
	}, root.UnresolvedKeys())
	assert.Equal(t, []Key{KeyOf[*auditLog]()}, root.MemberInjectRequests())
}
