package cli

// This file contains the plan command for previewing the run matrix.

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mzbench/mzbench/bench"
)

func (a *App) plan(ctx *cli.Context) error {
	cfg, err := a.resolveConfig(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	specs, err := bench.Enumerate(cfg.Models, cfg.Instances, cfg.Repetitions)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Benchmark plan (%d runs) ===\n\n", len(specs))
	for _, spec := range specs {
		fmt.Printf("%4d  %-30s %-15s rep=%d\n", spec.Seq, spec.Model, spec.Instance, spec.Repetition)
	}
	fmt.Printf("\nSolver: %s (backend: %s), timeout: %ds, workers: %d\n",
		cfg.Solver, cfg.Backend, cfg.TimeoutSeconds, cfg.Workers)

	return nil
}
