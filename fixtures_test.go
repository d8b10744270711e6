package weld

import (
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"

	welderrors "github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// Fixture types shared across the package tests. They model a small
// application wired through an injector.

type accountStore struct{}

type auditLog struct {
	Store *accountStore `inject:""`
}

type reportJob struct {
	Log     *auditLog     `inject:""`
	Archive *accountStore `inject:"archive"`
}

type mailerAPI interface {
	Send(to string) error
}

type smtpMailer struct{}

func (*smtpMailer) Send(string) error { return nil }

// appInjector is the fixture injector interface used by reflection tests.
type appInjector interface {
	InjectAudit(a *auditLog)
	Store() *accountStore
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func testLogger(t *testing.T) logger.Logger {
	return logger.NewZapLogger(zaptest.NewLogger(t))
}

func testCollector(t *testing.T) *Collector {
	return newCollector(testLogger(t), 0)
}

func testPipeline(t *testing.T, opts ...Option) *Pipeline {
	opts = append(opts, WithLogger(testLogger(t)))
	return NewPipeline(DefaultConfig(), opts...)
}

// descriptor wraps a static module as a ModuleDescriptor.
func descriptor(m Module) ModuleDescriptor {
	return ModuleDescriptor{ID: m.Name(), New: func() (Module, error) { return m, nil }}
}

// diagCode extracts the structured code of a recorded diagnostic.
func diagCode(err error) string {
	var e *welderrors.Error
	if welderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// diagCodes extracts the error codes of the collected diagnostics.
func diagCodes(diags []Diagnostic) []string {
	codes := make([]string, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, diagCode(d.Err))
	}
	return codes
}
