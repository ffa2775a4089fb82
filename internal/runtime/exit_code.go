// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is a clean exit.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure status.
	ExitFailure ExitCode = 1
	// ExitUsage reports a request the launcher refused before starting anything.
	ExitUsage ExitCode = 2
	// ExitNotExecutable means the program exists but cannot be executed.
	ExitNotExecutable ExitCode = 126
	// ExitNotFound means the program or interpreter does not exist.
	ExitNotFound ExitCode = 127
	// exitSignalBase is added to the signal number of a signaled child.
	exitSignalBase ExitCode = 128
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code in the range 0-255.
	// The zero value means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an InvalidExitCodeError when c is outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsStartFailure reports whether c is one of the codes used when a process
// could not be started (126, 127).
func (c ExitCode) IsStartFailure() bool { return c == ExitNotExecutable || c == ExitNotFound }

// String returns the decimal representation.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
