package mznout

// This file contains the outcome classifier mapping a raw run and its
// extracted statistics to exactly one outcome.

import (
	"strings"

	"github.com/mzbench/mzbench/model"
)

// Classify determines the outcome of one run. Precedence, first match
// wins:
//
//  1. timed out -> TIMEOUT, even if partial output looks solved: the
//     wall-clock budget was exceeded
//  2. error marker -> SOLVER_ERROR, whatever the exit code says
//  3. non-zero exit without usable statistics -> SOLVER_ERROR
//  4. unsatisfiable marker -> UNSATISFIABLE
//  5. solution marker with a parseable record -> SOLVED
//  6. unknown marker -> TIMEOUT: the solver hit its own time limit,
//     which is set to the same budget as the wall clock
//  7. anything else -> PARSE_ERROR
//
// When both the unsatisfiable and solution markers appear, the solution
// wins only if the solver also reported search completeness; otherwise
// the run counts as UNSATISFIABLE.
func Classify(raw model.RawRunResult, rec model.StatRecord) model.Outcome {
	switch {
	case raw.TimedOut:
		return model.OutcomeTimeout
	case strings.Contains(raw.Stdout, errorMarker):
		return model.OutcomeSolverError
	case raw.ExitCode != 0 && !rec.HasData():
		return model.OutcomeSolverError
	case strings.Contains(raw.Stdout, unsatMarker):
		if rec.SolutionFound && rec.IsOptimal {
			return model.OutcomeSolved
		}
		return model.OutcomeUnsat
	case rec.SolutionFound:
		return model.OutcomeSolved
	case strings.Contains(raw.Stdout, unknownMarker):
		return model.OutcomeTimeout
	default:
		return model.OutcomeParseError
	}
}
