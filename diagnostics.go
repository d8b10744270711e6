package weld

import (
	"github.com/google/uuid"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// Diagnostic is one recorded pipeline error, stamped with the run it
// belongs to and its position in the run's error sequence.
type Diagnostic struct {
	Seq   int
	RunID string
	Err   error
}

// Collector is the pipeline's error sink. Components record every problem
// they meet and keep going; the pipeline aborts only at checkpoints. The
// recorded order is the encounter order, stable across identical runs.
type Collector struct {
	log   logger.Logger
	runID string
	max   int

	entries []Diagnostic
	total   int
}

func newCollector(log logger.Logger, maxErrors int) *Collector {
	return &Collector{
		log:   log,
		runID: uuid.NewString(),
		max:   maxErrors,
	}
}

// Add records an error and logs it. Nil errors are ignored. Past the
// configured cap, errors are still counted but no longer stored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.total++

	c.log.Error("pipeline error",
		logger.Error(err),
		logger.String("run_id", c.runID),
		logger.Int("seq", c.total))

	if c.max > 0 && len(c.entries) >= c.max {
		return
	}
	c.entries = append(c.entries, Diagnostic{Seq: c.total, RunID: c.runID, Err: err})
}

// Count returns how many errors were recorded, stored or not.
func (c *Collector) Count() int { return c.total }

// RunID returns the identifier stamped on this run's diagnostics.
func (c *Collector) RunID() string { return c.runID }

// Diagnostics returns the stored diagnostics in encounter order.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.entries))
	copy(out, c.entries)
	return out
}

// Checkpoint returns an aggregate error if anything was recorded since the
// run began, nil otherwise. The pipeline calls this after each phase and
// aborts on a non-nil result.
func (c *Collector) Checkpoint(phase string) error {
	if c.total == 0 {
		return nil
	}

	errs := make([]error, 0, len(c.entries))
	for _, d := range c.entries {
		errs = append(errs, d.Err)
	}
	return errors.ErrCheckpointFailed(phase, c.total, errors.Join(errs...))
}
