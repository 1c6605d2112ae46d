package bench

// This file contains the benchmark driver: a bounded worker pool that
// drains the run matrix, isolating every per-run failure so a single
// bad run never aborts the session.

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mzbench/mzbench/config"
	"github.com/mzbench/mzbench/model"
	"github.com/mzbench/mzbench/mznout"
	"github.com/mzbench/mzbench/results"
)

// Invoker runs one external solver process for one run.
type Invoker interface {
	Invoke(ctx context.Context, spec model.RunSpec, modelPath, dataPath string, timeout time.Duration) model.RawRunResult
}

// Driver sequences enumeration, invocation, extraction, classification
// and aggregation for every run in the matrix.
type Driver struct {
	logger  zerolog.Logger
	invoker Invoker
	table   *results.Table
	cfg     *config.Config
}

// NewDriver returns a driver writing into table.
func NewDriver(logger zerolog.Logger, invoker Invoker, table *results.Table, cfg *config.Config) *Driver {
	return &Driver{
		logger:  logger,
		invoker: invoker,
		table:   table,
		cfg:     cfg,
	}
}

// Run executes the whole benchmark matrix. Workers (cfg.Workers, at
// least one) each own one solver process at a time. On cancellation no
// further runs start, in-flight solvers are killed through the context,
// and already-completed rows are flushed before returning, so a partial
// result file is always left valid. The context's error is returned on
// interruption, nil on full completion.
func (d *Driver) Run(ctx context.Context) error {
	specs, err := Enumerate(d.cfg.Models, d.cfg.Instances, d.cfg.Repetitions)
	if err != nil {
		return err
	}

	total := len(specs)
	timeout := d.cfg.Timeout()
	workers := d.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	queue := make(chan model.RunSpec)
	var wg sync.WaitGroup
	var completed atomic.Int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range queue {
				row, ok := d.runOne(ctx, spec, timeout)
				if !ok {
					continue
				}
				d.table.Append(row)
				if err := d.table.Flush(); err != nil {
					d.logger.Warn().Err(err).Msg("Failed to flush results")
				}

				d.logger.Info().
					Int64("completed", completed.Add(1)).
					Int("total", total).
					Str("model", spec.Model).
					Str("instance", spec.Instance).
					Int("repetition", spec.Repetition).
					Str("outcome", string(row.Outcome)).
					Dur("elapsed", row.Elapsed).
					Msg("Run completed")
			}
		}()
	}

	// Feed the queue lazily; stop handing out work once cancelled.
feed:
	for _, spec := range specs {
		select {
		case queue <- spec:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	if err := d.table.Flush(); err != nil {
		return err
	}

	return ctx.Err()
}

// runOne performs a single run end to end. Orchestrator-side faults
// (missing input files) are recorded as SOLVER_ERROR rows rather than
// propagated. The second return is false when the run was aborted by
// session cancellation: an interrupted in-flight run produces no row.
func (d *Driver) runOne(ctx context.Context, spec model.RunSpec, timeout time.Duration) (model.ResultRow, bool) {
	modelPath := d.cfg.ModelPath(spec.Model)
	dataPath := d.cfg.DataPath(spec.Instance)

	for _, path := range []string{modelPath, dataPath} {
		if _, err := os.Stat(path); err != nil {
			d.logger.Error().
				Err(err).
				Str("model", spec.Model).
				Str("instance", spec.Instance).
				Str("path", path).
				Msg("Input file missing, recording run as failed")
			return model.ResultRow{Spec: spec, Outcome: model.OutcomeSolverError}, true
		}
	}

	raw := d.invoker.Invoke(ctx, spec, modelPath, dataPath, timeout)

	// A run cut short by the stop signal is not an observation.
	if ctx.Err() != nil && !raw.TimedOut {
		return model.ResultRow{}, false
	}

	rec, err := mznout.Extract(raw.Stdout)
	if err != nil {
		d.logger.Debug().
			Err(err).
			Str("model", spec.Model).
			Str("instance", spec.Instance).
			Msg("Solver output not parseable")
	}

	return model.ResultRow{
		Spec:    spec,
		Outcome: mznout.Classify(raw, rec),
		Stats:   rec,
		Elapsed: raw.Elapsed,
	}, true
}
