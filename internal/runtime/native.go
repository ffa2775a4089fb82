// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultGracePeriod is how long a canceled child has to exit after the
// interrupt before it is killed.
const DefaultGracePeriod = 10 * time.Second

type (
	// NativeRuntime runs programs directly on the host, without a shell.
	NativeRuntime struct {
		// GracePeriod overrides DefaultGracePeriod when positive.
		GracePeriod time.Duration
		// Env builds the child environment. When nil, the host environment
		// plus ExecutionContext.Env is used.
		Env EnvBuilder
		// Logger receives debug records for process lifecycle events.
		Logger *log.Logger

		// startPTY replaces pty.Start in tests.
		startPTY func(*exec.Cmd) (*os.File, error)
	}

	// executeOutput configures where child output goes: the caller's writers
	// for Execute, in-memory buffers for ExecuteCapture.
	executeOutput struct {
		stdout io.Writer
		stderr io.Writer
	}

	capturedOutput struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
	}
)

// NewNativeRuntime creates a NativeRuntime with default settings.
func NewNativeRuntime(logger *log.Logger) *NativeRuntime {
	return &NativeRuntime{Logger: logger}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string { return "native" }

// Execute starts the child with the context's streams and waits for it.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	if ctx.TTY {
		return r.executeTTY(ctx)
	}
	return r.execute(ctx, &executeOutput{stdout: ctx.Stdout, stderr: ctx.Stderr}, nil)
}

// ExecuteCapture starts the child with buffered output and waits for it.
// Stdin is not connected.
func (r *NativeRuntime) ExecuteCapture(ctx *ExecutionContext) *Result {
	captured := &capturedOutput{}
	probe := *ctx
	probe.Stdin = nil
	return r.execute(&probe, &executeOutput{stdout: &captured.stdout, stderr: &captured.stderr}, captured)
}

func (r *NativeRuntime) execute(ctx *ExecutionContext, out *executeOutput, captured *capturedOutput) *Result {
	cmd := r.command(ctx)
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr

	if err := cmd.Start(); err != nil {
		startErr := NewProcessStartError(startPath(ctx), err)
		return NewErrorResult(startErr.Code, startErr)
	}
	r.logger().Debug("process started", "pid", cmd.Process.Pid, "program", ctx.Program)

	result := r.wait(ctx, cmd, cmd.Wait())
	if captured != nil {
		result.Output = captured.stdout.String()
		result.ErrOutput = captured.stderr.String()
	}
	return result
}

// command prepares the exec.Cmd for ctx. Start errors (missing interpreter,
// missing program) surface from cmd.Start.
func (r *NativeRuntime) command(ctx *ExecutionContext) *exec.Cmd {
	parent := ctx.Context
	if parent == nil {
		parent = context.Background()
	}

	argv := ctx.Argv()
	cmd := exec.CommandContext(parent, argv[0], argv[1:]...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = r.envBuilder().Build(ctx.Env)
	cmd.Cancel = func() error { return interrupt(cmd.Process) }
	cmd.WaitDelay = r.gracePeriod()
	return cmd
}

// wait converts the error from cmd.Wait into a Result. A non-zero exit is a
// normal outcome and carries no error.
func (r *NativeRuntime) wait(ctx *ExecutionContext, cmd *exec.Cmd, err error) *Result {
	switch {
	case err == nil:
		r.logger().Debug("process exited", "code", 0)
		return NewExitCodeResult(ExitSuccess)
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
		// Exited, but a grandchild kept the output pipes open past the grace period.
		return NewExitCodeResult(exitCodeFromState(cmd.ProcessState))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitCodeFromState(exitErr.ProcessState)
		if validateErr := code.Validate(); validateErr != nil {
			return NewErrorResult(ExitFailure, validateErr)
		}
		r.logger().Debug("process exited", "code", int(code))
		return NewExitCodeResult(code)
	}

	// Wait reports the context error when a canceled child still exits
	// cleanly; the child's own status wins.
	if cmd.ProcessState != nil && cmd.ProcessState.Exited() {
		code := exitCodeFromState(cmd.ProcessState)
		r.logger().Debug("process exited after interrupt", "code", int(code))
		return NewExitCodeResult(code)
	}
	if ctx.Context != nil && ctx.Context.Err() != nil {
		r.logger().Debug("process interrupted", "reason", ctx.Context.Err())
		return NewExitCodeResult(exitInterrupted)
	}
	return NewErrorResult(ExitFailure, err)
}

func (r *NativeRuntime) envBuilder() EnvBuilder {
	if r.Env != nil {
		return r.Env
	}
	return NewDefaultEnvBuilder()
}

func (r *NativeRuntime) gracePeriod() time.Duration {
	if r.GracePeriod > 0 {
		return r.GracePeriod
	}
	return DefaultGracePeriod
}

func (r *NativeRuntime) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// startPath names the file a start failure is about: the interpreter when one
// is configured, else the program.
func startPath(ctx *ExecutionContext) string {
	if ctx.Interpreter != "" {
		return ctx.Interpreter
	}
	return ctx.Program
}
