package results

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mzbench/mzbench/model"
)

func solvedRow(seq int, m, inst string, solveMS float64) model.ResultRow {
	return model.ResultRow{
		Spec:    model.RunSpec{Seq: seq, Model: m, Instance: inst, Repetition: 1},
		Outcome: model.OutcomeSolved,
		Stats: model.StatRecord{
			SolveTimeMS:   floatPtr(solveMS),
			SolutionFound: true,
			Solutions:     1,
		},
		Elapsed: time.Duration(solveMS * float64(time.Millisecond)),
	}
}

func TestSummarize(t *testing.T) {
	rows := []model.ResultRow{
		solvedRow(0, "m1", "n8", 10),
		solvedRow(1, "m1", "n10", 20),
		solvedRow(2, "m1", "n12", 30),
		{
			Spec:    model.RunSpec{Seq: 3, Model: "m1", Instance: "n15", Repetition: 1},
			Outcome: model.OutcomeTimeout,
			Elapsed: 5 * time.Second,
		},
	}

	summaries := Summarize(rows)
	require.Len(t, summaries, 1)

	s := summaries[0]
	require.Equal(t, "m1", s.Model)
	require.Equal(t, 4, s.Runs)
	require.Equal(t, 3, s.Solved)
	require.InDelta(t, 0.75, s.SuccessRate, 1e-9)

	// The timeout row must not pollute the timing statistics.
	require.InDelta(t, 20.0, s.MeanSolveMS, 1e-9)
	require.InDelta(t, 20.0, s.MedianSolveMS, 1e-9)
}

func TestSummarize_NoSolvedRuns(t *testing.T) {
	rows := []model.ResultRow{
		{
			Spec:    model.RunSpec{Seq: 0, Model: "m1", Instance: "n8", Repetition: 1},
			Outcome: model.OutcomeSolverError,
		},
	}

	summaries := Summarize(rows)
	require.Len(t, summaries, 1)
	require.Equal(t, 0, summaries[0].Solved)
	require.Zero(t, summaries[0].SuccessRate)
	require.True(t, math.IsNaN(summaries[0].MeanSolveMS))
	require.True(t, math.IsNaN(summaries[0].MedianSolveMS))
}

func TestSummarize_GroupsByModelInFirstSeenOrder(t *testing.T) {
	rows := []model.ResultRow{
		solvedRow(0, "m1", "n8", 10),
		solvedRow(1, "m2", "n8", 40),
		solvedRow(2, "m1", "n10", 30),
	}

	summaries := Summarize(rows)
	require.Len(t, summaries, 2)
	require.Equal(t, "m1", summaries[0].Model)
	require.Equal(t, 2, summaries[0].Runs)
	require.InDelta(t, 20.0, summaries[0].MeanSolveMS, 1e-9)
	require.Equal(t, "m2", summaries[1].Model)
	require.InDelta(t, 40.0, summaries[1].MeanSolveMS, 1e-9)
}

func TestBestPerInstance(t *testing.T) {
	rows := []model.ResultRow{
		solvedRow(0, "m1", "n8", 25),
		solvedRow(1, "m2", "n8", 10),
		solvedRow(2, "m1", "n10", 15),
		{
			Spec:    model.RunSpec{Seq: 3, Model: "m2", Instance: "n10", Repetition: 1},
			Outcome: model.OutcomeTimeout,
			Elapsed: 5 * time.Second,
		},
		{
			Spec:    model.RunSpec{Seq: 4, Model: "m1", Instance: "n50", Repetition: 1},
			Outcome: model.OutcomeTimeout,
			Elapsed: 5 * time.Second,
		},
	}

	best := BestPerInstance(rows)
	require.Len(t, best, 2)
	require.Equal(t, "n8", best[0].Instance)
	require.Equal(t, "m2", best[0].Model)
	require.InDelta(t, 10.0, best[0].TimeMS, 1e-9)
	require.Equal(t, "n10", best[1].Instance)
	require.Equal(t, "m1", best[1].Model)
}
