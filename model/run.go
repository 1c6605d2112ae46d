package model

import "time"

// RunSpec identifies exactly one solver invocation within a benchmark
// session: one model, one problem instance, one repetition.
type RunSpec struct {
	// Sequence number in enumeration order, used to recover canonical
	// row order when runs complete out of order under concurrency
	Seq int `json:"seq"`
	// Model identifier (file name under the models directory)
	Model string `json:"model"`
	// Problem instance identifier (file name under the data directory)
	Instance string `json:"instance"`
	// Repetition index, starting at 1
	Repetition int `json:"repetition"`
}

// RawRunResult is the unprocessed outcome of a single solver process:
// exit status, captured output and wall-clock timing. It is produced by
// the invoker and consumed once by extraction and classification.
type RawRunResult struct {
	Spec RunSpec `json:"spec"`
	// Exit code of the solver process; -1 if it could not be started
	ExitCode int `json:"exit_code"`
	// Captured standard output, possibly partial after a timeout
	Stdout string `json:"-"`
	// Captured standard error (solver diagnostics)
	Stderr string `json:"-"`
	// Wall-clock duration of the invocation
	Elapsed time.Duration `json:"elapsed"`
	// Whether the wall-clock limit was exceeded and the process killed
	TimedOut bool `json:"timed_out"`
}

// Outcome is the closed classification of one run's result.
type Outcome string

const (
	OutcomeSolved      Outcome = "SOLVED"
	OutcomeUnsat       Outcome = "UNSATISFIABLE"
	OutcomeTimeout     Outcome = "TIMEOUT"
	OutcomeSolverError Outcome = "SOLVER_ERROR"
	OutcomeParseError  Outcome = "PARSE_ERROR"
)

// ResultRow is the unit stored in the result table: one run's identity,
// classification and statistics.
type ResultRow struct {
	Spec    RunSpec       `json:"spec"`
	Outcome Outcome       `json:"outcome"`
	Stats   StatRecord    `json:"stats"`
	Elapsed time.Duration `json:"elapsed"`
}
