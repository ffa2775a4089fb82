// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/fang"

	"github.com/trainlaunch/trainlaunch/internal/issue"
	"github.com/trainlaunch/trainlaunch/internal/launch"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method, which shows the full error
// chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// handleError is the fang error handler. A bare ExitError means the training
// program failed and already reported why, so nothing is printed. Errors
// linked to an issue get the rendered issue appended in verbose mode.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(ae, a.verbose))
	if !a.verbose || ae.Issue == 0 {
		return
	}
	if is := issue.Get(ae.Issue); is != nil {
		if rendered, renderErr := is.Render(a.colorScheme); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// startFailure turns a launch error into an ActionableError carrying the
// matching issue and remediation hints.
func startFailure(err error) error {
	ec := issue.NewErrorContext().
		WithOperation("start training program").
		WithIssue(issue.ProcessStartFailedId).
		Wrap(err)

	var startErr *runtime.ProcessStartError
	if errors.As(err, &startErr) {
		ec.WithResource(startErr.Path)
	}

	var p *launch.Problem
	if !errors.As(err, &p) {
		return ec.WithSuggestion("Run 'trainlaunch check' to list every missing path").BuildError()
	}

	ec.WithIssue(p.Issue)
	switch p.Field {
	case "HOMEDIR":
		ec.WithSuggestion("Set HOMEDIR to an absolute path or pass --home-dir")
	case "MODEL":
		ec.WithSuggestion("Pass a plain model name, e.g. --model yolov5s")
	case "interpreter":
		ec.WithSuggestion("Activate the Python environment holding the YOLOv5 requirements").
			WithSuggestion("Or set launch.interpreter in config.cue")
	default:
		ec.WithSuggestion("Run 'trainlaunch check' to list every missing path").
			WithSuggestion("Run 'trainlaunch args' to print the exact command line")
	}
	return ec.BuildError()
}
