package solver

// This file contains solver process execution: one external process per
// run, under a hard wall-clock timeout, with full output capture.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mzbench/mzbench/model"
)

// InvocationError reports a solver process that could not be started at
// all (missing executable, bad permissions). It is recorded in the run
// result, never propagated to the driver.
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("solver %q could not be started: %v", e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Invoker launches solver processes. It holds the invocation surface
// shared by all runs; per-run inputs arrive through Invoke.
type Invoker struct {
	Logger    zerolog.Logger
	Command   string   // Solver executable
	Backend   string   // Solver backend (--solver)
	ExtraArgs []string // Flags appended to every invocation
}

// Invoke runs the solver once for spec and returns whatever happened.
// Every failure mode is folded into the RawRunResult: a timeout kills
// the solver's whole process group and keeps the partial output, a
// non-zero exit keeps the exit code and stderr, and a process that
// never started is reported with exit code -1.
func (inv *Invoker) Invoke(ctx context.Context, spec model.RunSpec, modelPath, dataPath string, timeout time.Duration) model.RawRunResult {
	opts := Options{
		Command:   inv.Command,
		Backend:   inv.Backend,
		TimeLimit: timeout,
		ModelPath: modelPath,
		DataPath:  dataPath,
		ExtraArgs: inv.ExtraArgs,
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, opts.Command, BuildArgs(opts)...)

	// Run the solver in its own process group so the timeout kill also
	// reaps any worker processes it forked.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	var killed atomic.Bool
	cmd.Cancel = func() error {
		killed.Store(true)
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	inv.Logger.Debug().
		Str("model", spec.Model).
		Str("instance", spec.Instance).
		Str("command", BuildCommand(opts)).
		Msg("Starting solver")

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	res := model.RawRunResult{
		Spec:     spec,
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Elapsed:  elapsed,
		// A run only counts as timed out when the deadline kill
		// actually fired. Sampling runCtx.Err() alone would misflag a
		// process that exited cleanly just before the deadline.
		TimedOut: killed.Load() && errors.Is(context.Cause(runCtx), context.DeadlineExceeded),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// The process never started.
			invErr := &InvocationError{Command: opts.Command, Err: err}
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = invErr.Error()
			}
			inv.Logger.Warn().
				Err(invErr).
				Str("model", spec.Model).
				Str("instance", spec.Instance).
				Msg("Failed to start solver")
		}
	}

	return res
}
