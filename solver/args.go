package solver

// args.go contains utilities for building solver command lines.

import (
	"strconv"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
)

// Options describes one solver invocation.
type Options struct {
	Command   string        // Solver executable (e.g. "minizinc")
	Backend   string        // Solver backend passed via --solver
	TimeLimit time.Duration // Solver-side time limit, passed in milliseconds
	ModelPath string        // Path to the model file
	DataPath  string        // Path to the instance data file
	ExtraArgs []string      // Additional flags appended before the files
}

// BuildArgs builds the solver argument list. Statistics reporting is
// always requested; the model and data files are the trailing
// positional arguments.
func BuildArgs(opts Options) []string {
	args := []string{}

	if opts.Backend != "" {
		args = append(args, "--solver", opts.Backend)
	}

	args = append(args, "--statistics")

	if opts.TimeLimit > 0 {
		args = append(args, "--time-limit", strconv.FormatInt(opts.TimeLimit.Milliseconds(), 10))
	}

	for _, arg := range opts.ExtraArgs {
		args = append(args, strings.TrimSpace(arg))
	}

	args = append(args, opts.ModelPath, opts.DataPath)

	return args
}

// BuildCommand renders the full invocation as a shell-escaped string.
// It reuses BuildArgs and is only used for logging.
func BuildCommand(opts Options) string {
	args := BuildArgs(opts)

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellescape.Quote(opts.Command))

	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}

	return strings.Join(parts, " ")
}
