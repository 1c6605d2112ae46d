package results

// This file contains summary statistics over a result table: per-model
// success rates and timing central tendency, plus the best model per
// instance.

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mzbench/mzbench/model"
)

// ModelSummary aggregates the runs of one model.
type ModelSummary struct {
	Model  string
	Runs   int
	Solved int
	// Solved / Runs
	SuccessRate float64
	// Mean and median of solve_time_ms over SOLVED rows only; NaN when
	// no solved run reported a time. Timeouts and errors never enter
	// the timing statistics.
	MeanSolveMS   float64
	MedianSolveMS float64
}

// Summarize computes per-model summaries in first-seen (enumeration)
// order.
func Summarize(rows []model.ResultRow) []ModelSummary {
	order := []string{}
	byModel := map[string][]model.ResultRow{}
	for _, row := range rows {
		if _, seen := byModel[row.Spec.Model]; !seen {
			order = append(order, row.Spec.Model)
		}
		byModel[row.Spec.Model] = append(byModel[row.Spec.Model], row)
	}

	summaries := make([]ModelSummary, 0, len(order))
	for _, name := range order {
		group := byModel[name]
		s := ModelSummary{Model: name, Runs: len(group)}

		var times []float64
		for _, row := range group {
			if row.Outcome != model.OutcomeSolved {
				continue
			}
			s.Solved++
			if row.Stats.SolveTimeMS != nil {
				times = append(times, *row.Stats.SolveTimeMS)
			}
		}

		s.SuccessRate = float64(s.Solved) / float64(s.Runs)
		if len(times) > 0 {
			sort.Float64s(times)
			s.MeanSolveMS = stat.Mean(times, nil)
			s.MedianSolveMS = stat.Quantile(0.5, stat.Empirical, times, nil)
		} else {
			s.MeanSolveMS = math.NaN()
			s.MedianSolveMS = math.NaN()
		}

		summaries = append(summaries, s)
	}

	return summaries
}

// InstanceBest names the fastest solved run for one instance.
type InstanceBest struct {
	Instance string
	Model    string
	TimeMS   float64
}

// BestPerInstance finds, for each instance in first-seen order, the
// SOLVED row with the lowest solve time. Rows without a solver-reported
// time fall back to wall-clock elapsed. Instances never solved are
// omitted.
func BestPerInstance(rows []model.ResultRow) []InstanceBest {
	order := []string{}
	best := map[string]*InstanceBest{}

	for _, row := range rows {
		if _, seen := best[row.Spec.Instance]; !seen {
			order = append(order, row.Spec.Instance)
			best[row.Spec.Instance] = nil
		}
		if row.Outcome != model.OutcomeSolved {
			continue
		}
		t := float64(row.Elapsed.Milliseconds())
		if row.Stats.SolveTimeMS != nil {
			t = *row.Stats.SolveTimeMS
		}
		if b := best[row.Spec.Instance]; b == nil || t < b.TimeMS {
			best[row.Spec.Instance] = &InstanceBest{
				Instance: row.Spec.Instance,
				Model:    row.Spec.Model,
				TimeMS:   t,
			}
		}
	}

	out := make([]InstanceBest, 0, len(order))
	for _, instance := range order {
		if b := best[instance]; b != nil {
			out = append(out, *b)
		}
	}
	return out
}
