// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load configuration"},
			expected: "failed to load configuration",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "start training program",
				Resource:  "/home/me/GitHub/yolov5/train.py",
			},
			expected: "failed to start training program: /home/me/GitHub/yolov5/train.py",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "start training program",
				Resource:  "train.py",
				Cause:     errors.New("no such file or directory"),
			},
			expected: "failed to start training program: train.py: no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().
		WithOperation("resolve variables").
		Wrap(fmt.Errorf("wrapped: %w", sentinel)).
		BuildError()

	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(err, sentinel) = false, want true")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As(err, *ActionableError) = false")
	}
	if ae.Operation != "resolve variables" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "resolve variables")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("start training program").
		WithSuggestion("Run 'trainlaunch check'").
		WithSuggestion("Set HOMEDIR").
		Wrap(fmt.Errorf("outer: %w", errors.New("inner"))).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "• Run 'trainlaunch check'") || !strings.Contains(plain, "• Set HOMEDIR") {
		t.Errorf("Format(false) missing suggestions:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "1. outer: inner") || !strings.Contains(verbose, "2. inner") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

// startError mirrors the launcher's start errors, which expose a sentinel
// and a cause through Unwrap() []error.
type startError struct {
	cause error
}

var errStart = errors.New("process start failure")

func (e *startError) Error() string   { return "cannot start /h/train.py: " + e.cause.Error() }
func (e *startError) Unwrap() []error { return []error{errStart, e.cause} }

func TestActionableError_FormatFollowsJoinedCauses(t *testing.T) {
	t.Parallel()

	stat := fmt.Errorf("stat /h/train.py: %w", errors.New("no such file or directory"))
	err := NewErrorContext().
		WithOperation("start training program").
		Wrap(&startError{cause: stat}).
		Build()

	verbose := err.Format(true)
	for _, want := range []string{
		"1. cannot start /h/train.py: stat /h/train.py: no such file or directory",
		"2. process start failure",
		"3. stat /h/train.py: no such file or directory",
		"4. no such file or directory",
	} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("config.cue").Wrap(errors.New("boom"))
	if ae := ctx.Build(); ae != nil {
		t.Errorf("Build() = %v, want nil", ae)
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want untyped nil", err)
	}
}

func TestErrorContext_WithIssue(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().WithOperation("start training program").WithIssue(ProcessStartFailedId).Build()
	if ae.Issue != ProcessStartFailedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, ProcessStartFailedId)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	cause := errors.New("denied")
	got := WrapWithOperation(cause, "read env file")
	if got.Error() != "failed to read env file: denied" {
		t.Errorf("Error() = %q", got.Error())
	}
}
