package weld

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	welderrors "github.com/xraph/weld/errors"
)

func TestDescribeInjector(t *testing.T) {
	methods, err := DescribeInjector(typeOf[appInjector]())
	require.NoError(t, err)
	require.Len(t, methods, 2)

	// reflect reports interface methods in name order.
	assert.Equal(t, "InjectAudit", methods[0].Name)
	assert.Equal(t, []reflect.Type{typeOf[*auditLog]()}, methods[0].Params)
	assert.Nil(t, methods[0].Return)

	assert.Equal(t, "Store", methods[1].Name)
	assert.Empty(t, methods[1].Params)
	assert.Equal(t, typeOf[*accountStore](), methods[1].Return)
}

func TestDescribeInjector_RejectsNonInterface(t *testing.T) {
	_, err := DescribeInjector(typeOf[accountStore]())
	require.Error(t, err)
	assert.Equal(t, welderrors.CodeInvalidInjector, diagCode(err))

	_, err = DescribeInjector(nil)
	require.Error(t, err)
}

type multiReturnInjector interface {
	Store() (*accountStore, error)
	Audit() *auditLog
}

func TestDescribeInjector_RejectsMultipleReturns(t *testing.T) {
	methods, err := DescribeInjector(typeOf[multiReturnInjector]())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store")

	// The describable methods are still returned.
	require.Len(t, methods, 1)
	assert.Equal(t, "Audit", methods[0].Name)
}

func TestInjectorDef_AllMethods_Diamond(t *testing.T) {
	base := &InjectorDef{
		Name:    "base",
		Methods: []MethodDef{{Name: "Store", Return: typeOf[*accountStore]()}},
	}
	left := &InjectorDef{Name: "left", Extends: []*InjectorDef{base}}
	right := &InjectorDef{
		Name:    "right",
		Methods: []MethodDef{{Name: "Audit", Return: typeOf[*auditLog]()}},
		Extends: []*InjectorDef{base},
	}
	top := &InjectorDef{
		Name:    "top",
		Methods: []MethodDef{{Name: "Mailer", Return: typeOf[mailerAPI]()}},
		Extends: []*InjectorDef{left, right},
	}

	methods := top.AllMethods()
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.Name)
	}

	// Own methods first, then ancestors in declaration order, base once.
	assert.Equal(t, []string{"Mailer", "Store", "Audit"}, names)
}

func TestInjectorDef_SelfKey(t *testing.T) {
	def := &InjectorDef{Name: "app", Type: typeOf[appInjector]()}
	assert.Equal(t, KeyOf[appInjector](), def.SelfKey())

	untyped := &InjectorDef{Name: "anonymous"}
	assert.True(t, untyped.SelfKey().IsZero())
}

func TestMethodDef_ProvisionKey(t *testing.T) {
	m := MethodDef{Name: "Archive", Return: typeOf[*accountStore](), Qualifier: "archive"}
	assert.Equal(t, QualifiedKeyOf[*accountStore]("archive"), m.provisionKey())
}
