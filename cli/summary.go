package cli

// This file contains the summary command and the shared summary
// rendering used after a run.

import (
	"fmt"
	"math"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/mzbench/mzbench/model"
	"github.com/mzbench/mzbench/results"
)

func (a *App) summary(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one result file argument, got %d", ctx.NArg())
	}

	rows, err := results.Load(ctx.Args().First())
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("Result file contains no runs")
		return nil
	}

	a.printSummary(results.SortBySeq(rows))
	return nil
}

func (a *App) printSummary(rows []model.ResultRow) {
	if len(rows) == 0 {
		return
	}

	best := results.BestPerInstance(rows)
	if len(best) > 0 {
		fmt.Printf("\n=== Best model per instance ===\n\n")
		for _, b := range best {
			fmt.Printf("%-15s %-30s %10.1f ms\n", b.Instance, b.Model, b.TimeMS)
		}
	}

	summaries := results.Summarize(rows)

	// Fastest models first; models with no timing data go last.
	sort.SliceStable(summaries, func(i, j int) bool {
		mi, mj := summaries[i].MeanSolveMS, summaries[j].MeanSolveMS
		if math.IsNaN(mj) {
			return !math.IsNaN(mi)
		}
		if math.IsNaN(mi) {
			return false
		}
		return mi < mj
	})

	fmt.Printf("\n=== Per-model summary (%d runs) ===\n\n", len(rows))
	for _, s := range summaries {
		mean, median := "n/a", "n/a"
		if !math.IsNaN(s.MeanSolveMS) {
			mean = fmt.Sprintf("%.1f ms", s.MeanSolveMS)
			median = fmt.Sprintf("%.1f ms", s.MedianSolveMS)
		}
		fmt.Printf("%-30s %3d/%-3d solved (%5.1f%%)  mean=%-12s median=%s\n",
			s.Model, s.Solved, s.Runs, s.SuccessRate*100, mean, median)
	}

	// Non-solved outcomes are flagged, never hidden.
	failures := map[model.Outcome]int{}
	for _, row := range rows {
		if row.Outcome != model.OutcomeSolved {
			failures[row.Outcome]++
		}
	}
	if len(failures) > 0 {
		fmt.Printf("\nNon-solved runs:")
		for _, outcome := range []model.Outcome{
			model.OutcomeUnsat, model.OutcomeTimeout,
			model.OutcomeSolverError, model.OutcomeParseError,
		} {
			if n := failures[outcome]; n > 0 {
				fmt.Printf("  %s=%d", outcome, n)
			}
		}
		fmt.Println()
	}
}
