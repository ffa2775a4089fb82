// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"os"
	"syscall"
)

// exitInterrupted is reported when the child was stopped by our own
// cancellation without an exit status of its own.
const exitInterrupted = exitSignalBase + ExitCode(syscall.SIGINT)

// exitCodeFromState follows the shell convention of 128+N for a child killed
// by signal N.
func exitCodeFromState(state *os.ProcessState) ExitCode {
	if state == nil {
		return ExitFailure
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return exitSignalBase + ExitCode(ws.Signal())
	}
	return ExitCode(state.ExitCode())
}

func interrupt(p *os.Process) error {
	return p.Signal(os.Interrupt)
}
