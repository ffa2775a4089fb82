// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import "os"

const exitInterrupted = ExitFailure

func exitCodeFromState(state *os.ProcessState) ExitCode {
	if state == nil || state.ExitCode() < 0 {
		return ExitFailure
	}
	return ExitCode(state.ExitCode())
}

// Interrupt cannot be delivered to another process on this platform.
func interrupt(p *os.Process) error {
	return p.Kill()
}
