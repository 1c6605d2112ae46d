package cli

// This file contains the run command: configuration resolution, result
// table setup, signal handling and driver execution.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mzbench/mzbench/bench"
	"github.com/mzbench/mzbench/config"
	"github.com/mzbench/mzbench/results"
	"github.com/mzbench/mzbench/solver"
)

func (a *App) run(ctx *cli.Context) error {
	cfg, err := a.resolveConfig(ctx)
	if err != nil {
		return err
	}

	// Invalid configuration aborts before any output file is created.
	if err := cfg.Validate(); err != nil {
		return err
	}

	outputPath := cfg.OutputPath(time.Now())
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create results directory %s: %w", dir, err)
		}
	}

	table, err := results.Create(outputPath)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	invoker := &solver.Invoker{
		Logger:    a.logger,
		Command:   cfg.Solver,
		Backend:   cfg.Backend,
		ExtraArgs: cfg.ExtraArgs,
	}
	driver := bench.NewDriver(a.logger, invoker, table, cfg)

	a.logger.Info().
		Int("models", len(cfg.Models)).
		Int("instances", len(cfg.Instances)).
		Int("repetitions", cfg.Repetitions).
		Int("total", len(cfg.Models)*len(cfg.Instances)*cfg.Repetitions).
		Int("workers", cfg.Workers).
		Int("timeout_s", cfg.TimeoutSeconds).
		Str("output", outputPath).
		Msg("Starting benchmark")

	runErr := driver.Run(runCtx)

	rows := table.Rows()
	if err := table.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to close result file")
	}

	a.printSummary(rows)

	if runErr != nil {
		return runError(runErr, outputPath)
	}

	a.logger.Info().Str("output", outputPath).Msg("Benchmark complete")
	return nil
}

// runError maps a driver failure to the command's error. An interrupt
// exits with the conventional 130; completed rows were flushed, so the
// partial file is still valid. Anything else (a result file write
// failure) is a real error and must not masquerade as an interrupt.
func runError(err error, outputPath string) error {
	if errors.Is(err, context.Canceled) {
		return cli.Exit(fmt.Sprintf("benchmark interrupted (partial results in %s)", outputPath), 130)
	}
	return fmt.Errorf("benchmark failed: %w (partial results in %s)", err, outputPath)
}

// overrides carries the command-line flag values layered on top of the
// configuration file. The *Set booleans distinguish an explicit zero
// from an unset flag.
type overrides struct {
	Models         []string
	Instances      []string
	Repetitions    int
	RepetitionsSet bool
	Timeout        int
	TimeoutSet     bool
	Workers        int
	WorkersSet     bool
	Output         string
	Solver         string
	Backend        string
	SolverArgs     []string
}

// applyOverrides folds flag overrides into cfg. Unset flags leave the
// file's values untouched.
func applyOverrides(cfg *config.Config, o overrides) {
	if len(o.Models) > 0 {
		cfg.Models = o.Models
	}
	if len(o.Instances) > 0 {
		cfg.Instances = o.Instances
	}
	if o.RepetitionsSet {
		cfg.Repetitions = o.Repetitions
	}
	if o.TimeoutSet {
		cfg.TimeoutSeconds = o.Timeout
	}
	if o.WorkersSet {
		cfg.Workers = o.Workers
	}
	if o.Output != "" {
		cfg.Output = o.Output
	}
	if o.Solver != "" {
		cfg.Solver = o.Solver
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if len(o.SolverArgs) > 0 {
		cfg.ExtraArgs = o.SolverArgs
	}
}

// resolveConfig loads the configuration file and applies flag overrides.
func (a *App) resolveConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg, overrides{
		Models:         ctx.StringSlice("model"),
		Instances:      ctx.StringSlice("instance"),
		Repetitions:    ctx.Int("repetitions"),
		RepetitionsSet: ctx.IsSet("repetitions"),
		Timeout:        ctx.Int("timeout"),
		TimeoutSet:     ctx.IsSet("timeout"),
		Workers:        ctx.Int("workers"),
		WorkersSet:     ctx.IsSet("workers"),
		Output:         ctx.String("output"),
		Solver:         ctx.String("solver"),
		Backend:        ctx.String("backend"),
		SolverArgs:     ctx.StringSlice("solver-arg"),
	})

	return cfg, nil
}
