// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
	"os"
	"slices"
)

type (
	// ExecutionContext describes one process start.
	ExecutionContext struct {
		// Context cancels the child: it first receives an interrupt, then is
		// killed once the runtime's grace period expires.
		Context context.Context

		// Interpreter, when set, is resolved on PATH and receives Program as
		// its first argument.
		Interpreter string
		// Program is the executable or script to run.
		Program string
		// Args are passed after Program, in order.
		Args []string
		// Env overrides host environment entries with the same name.
		Env map[string]string
		// WorkDir is the child's working directory; empty inherits ours.
		WorkDir string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		// TTY attaches the child to a pseudo-terminal.
		TTY bool
	}

	// Runtime starts processes described by an ExecutionContext.
	Runtime interface {
		Name() string
		// Execute streams the child's output and waits for it to exit.
		Execute(ctx *ExecutionContext) *Result
		// ExecuteCapture buffers stdout and stderr into the Result.
		ExecuteCapture(ctx *ExecutionContext) *Result
	}
)

// NewExecutionContext returns a context for program with args, wired to the
// process's standard streams.
func NewExecutionContext(ctx context.Context, program string, args ...string) *ExecutionContext {
	return &ExecutionContext{
		Context: ctx,
		Program: program,
		Args:    args,
		Env:     make(map[string]string),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Argv returns the full command line: interpreter (when set), program, args.
func (c *ExecutionContext) Argv() []string {
	argv := make([]string, 0, len(c.Args)+2)
	if c.Interpreter != "" {
		argv = append(argv, c.Interpreter)
	}
	argv = append(argv, c.Program)
	return append(argv, slices.Clone(c.Args)...)
}
