// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// ErrProcessStart is the sentinel wrapped by every ProcessStartError.
var ErrProcessStart = errors.New("process start failure")

// ProcessStartError reports that the external program was never started:
// its path does not exist, is not executable, or the request built for it
// was rejected.
type ProcessStartError struct {
	// Path is the program or interpreter that failed.
	Path string
	// Code is the exit status the launcher reports (126 or 127, or 2 for a
	// rejected request).
	Code ExitCode
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ProcessStartError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot start process: %v", e.Err)
	}
	return fmt.Sprintf("cannot start %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *ProcessStartError) Unwrap() []error {
	return []error{ErrProcessStart, e.Err}
}

// NewProcessStartError classifies a start error from os/exec: missing files
// map to 127, everything else (permissions, bad format) to 126.
func NewProcessStartError(path string, err error) *ProcessStartError {
	code := ExitNotExecutable
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		code = ExitNotFound
	}
	return &ProcessStartError{Path: path, Code: code, Err: err}
}
