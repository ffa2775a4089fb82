// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/creack/pty"
)

// ptyDrainTimeout bounds how long we wait for the pty copy to finish after
// the child exits.
const ptyDrainTimeout = 2 * time.Second

// osStdin is the terminal whose size the pty copies.
var osStdin = os.Stdin

// executeTTY runs the child attached to a pseudo-terminal and copies its
// output to ctx.Stdout. When the platform has no pty support it falls back
// to plain pipes.
func (r *NativeRuntime) executeTTY(ctx *ExecutionContext) *Result {
	cmd := r.command(ctx)

	start := r.startPTY
	if start == nil {
		start = pty.Start
	}
	ptmx, err := start(cmd)
	if err != nil {
		if errors.Is(err, pty.ErrUnsupported) {
			r.logger().Warn("pseudo-terminal not supported, using plain output")
			return r.execute(ctx, &executeOutput{stdout: ctx.Stdout, stderr: ctx.Stderr}, nil)
		}
		startErr := NewProcessStartError(startPath(ctx), err)
		return NewErrorResult(startErr.Code, startErr)
	}
	defer func() { _ = ptmx.Close() }()

	if err := pty.InheritSize(osStdin, ptmx); err != nil {
		r.logger().Debug("terminal size not inherited", "error", err)
	}
	r.logger().Debug("process started", "pid", cmd.Process.Pid, "program", ctx.Program, "tty", true)

	stdout := ctx.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Reading the master returns EIO once the child side is closed.
		_, _ = io.Copy(stdout, ptmx)
	}()

	waitErr := cmd.Wait()
	select {
	case <-done:
	case <-time.After(ptyDrainTimeout):
	}
	return r.wait(ctx, cmd, waitErr)
}
