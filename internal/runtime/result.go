// SPDX-License-Identifier: MPL-2.0

package runtime

// Result is the outcome of one process run.
type Result struct {
	// ExitCode is the child's exit status, or the start-failure code.
	ExitCode ExitCode
	// Error is set only when the launcher itself failed (the child could not
	// be started or waited on). A child exiting non-zero is not an error.
	Error error
	// Output and ErrOutput are filled by ExecuteCapture.
	Output    string
	ErrOutput string
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result for a child that ran and exited with code.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports a zero exit code and no launcher error.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}
