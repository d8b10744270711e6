package weld

import (
	"bytes"
	"fmt"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// Pipeline resolves the complete binding graph for one injector
// definition. Phases run strictly in sequence, each collecting as many
// errors as it can; a checkpoint after each phase aborts the run if
// anything was recorded.
type Pipeline struct {
	cfg       Config
	log       logger.Logger
	diags     *Collector
	validator GraphValidator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger overrides the logger built from the config.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithGraphValidator attaches the external consistency check run after
// resolution.
func WithGraphValidator(v GraphValidator) Option {
	return func(p *Pipeline) { p.validator = v }
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.NewLogger(cfg.Logging)
	}
	return p
}

// Diagnostics returns the errors recorded by the most recent Process call.
func (p *Pipeline) Diagnostics() []Diagnostic {
	if p.diags == nil {
		return nil
	}
	return p.diags.Diagnostics()
}

// Process resolves the binding graph for the injector definition and
// returns the root of the resolved scope tree. On a checkpoint failure the
// aggregate error is returned and Diagnostics holds the individual ones.
func (p *Pipeline) Process(def *InjectorDef) (*Scope, error) {
	if def == nil {
		return nil, errors.ErrInvalidConfig("injector", errors.New("nil injector definition"))
	}

	log := p.log.Named("weld").With(logger.String("injector", def.Name))
	p.diags = newCollector(log, p.cfg.MaxErrors)
	implicit := newOverrideSet()

	log.Info("validating injector methods")
	mv := &methodValidator{log: log, diags: p.diags}
	mv.validate(def)
	if err := p.diags.Checkpoint("method-validation"); err != nil {
		return nil, err
	}

	log.Info("creating explicit bindings")
	root := NewRootScope(def.Name)
	visitor := &elementVisitor{log: log, diags: p.diags, implicit: implicit}
	visitor.bindInjector(def, root)
	visitor.seedInjectorRequirements(def, root)

	loader := &moduleLoader{log: log, diags: p.diags}
	modules := loader.load(def)
	visitor.visitAll(modules, root)
	if err := p.diags.Checkpoint("module-elements"); err != nil {
		return nil, err
	}

	log.Info("resolving scope tree", logger.Int("modules", len(modules)))
	res := &resolver{
		log:      log,
		diags:    p.diags,
		expander: &factoryExpander{log: log, diags: p.diags, implicit: implicit},
		implicit: implicit,
	}
	res.resolveAll(root)
	if err := p.diags.Checkpoint("resolution"); err != nil {
		return nil, err
	}

	if p.validator != nil && p.cfg.ValidateGraph {
		log.Info("running external graph validation")
		p.runGraphValidation(modules, implicit.Module())
	}
	if err := p.diags.Checkpoint("graph-validation"); err != nil {
		return nil, err
	}

	if p.cfg.DumpGraph {
		var buf bytes.Buffer
		DumpScope(&buf, root)
		log.Debug("resolved scope tree", logger.String("dump", buf.String()))
	}

	log.Info("binding graph resolved",
		logger.String("run_id", p.diags.RunID()),
		logger.Int("bindings", countBindings(root)))
	return root, nil
}

// runGraphValidation invokes the external validator, converting any error
// or panic into a single aggregated diagnostic.
func (p *Pipeline) runGraphValidation(modules []Module, override Module) {
	defer func() {
		if rec := recover(); rec != nil {
			p.diags.Add(errors.ErrExternalValidation(fmt.Errorf("validator panicked: %v", rec)))
		}
	}()

	if err := p.validator.Validate(modules, override); err != nil {
		p.diags.Add(errors.ErrExternalValidation(err))
	}
}

func countBindings(s *Scope) int {
	n := len(s.bindingOrder)
	for _, child := range s.Children() {
		n += countBindings(child)
	}
	return n
}
