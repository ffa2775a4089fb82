// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trainlaunch/trainlaunch/internal/launch"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

type checkItem struct {
	field string
	value string
}

func newCheckCommand(app *App) *cobra.Command {
	var flags launchFlags

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the training setup without starting it",
		Long: `Verify everything a training run depends on: HOMEDIR and MODEL, the
training program, the dataset manifest, the hyperparameter file and the
Python interpreter. Unlike 'run', every problem is reported, not just the
first. Exits 1 when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.prepare(cmd, &flags)
			if err != nil {
				return err
			}

			problems := app.Validator.Check(p.request)
			renderCheck(app.stdout, p.request, problems, app.probeInterpreter(cmd.Context(), p.request, problems))
			if len(problems) > 0 {
				return &ExitError{Code: runtime.ExitFailure}
			}
			return nil
		},
	}

	flags.register(checkCmd)
	return checkCmd
}

// probeInterpreter runs "<interpreter> --version" and returns its first
// output line, or "" when there is no usable interpreter.
func (a *App) probeInterpreter(ctx context.Context, req *launch.Request, problems []*launch.Problem) string {
	interp := req.Interpreter()
	if interp == "" {
		return ""
	}
	for _, p := range problems {
		if p.Field == "interpreter" {
			return ""
		}
	}

	logger := a.logger()
	rt := a.launcher(logger).Runtime
	ec := runtime.NewExecutionContext(ctx, interp, "--version")
	result := rt.ExecuteCapture(ec)
	if !result.Success() {
		logger.Debug("interpreter probe failed", "interpreter", interp, "code", int(result.ExitCode), "error", result.Error)
		return ""
	}
	// Python 2 printed its version on stderr.
	out := strings.TrimSpace(result.Output + result.ErrOutput)
	first, _, _ := strings.Cut(out, "\n")
	return first
}

func renderCheck(w io.Writer, req *launch.Request, problems []*launch.Problem, version string) {
	data, _ := req.Value(launch.FlagData)
	hyp, _ := req.Value(launch.FlagHyp)
	items := []checkItem{
		{"HOMEDIR", req.HomeDir()},
		{"MODEL", req.Model()},
		{"program", req.Program()},
		{"data", data},
		{"hyp", hyp},
		{"interpreter", req.Interpreter()},
	}

	fmt.Fprintln(w, TitleStyle.Render("Training setup"))
	fmt.Fprintln(w)

	for _, item := range items {
		var failed []string
		for _, p := range problems {
			if p.Field == item.field {
				failed = append(failed, p.Error())
			}
		}

		value := item.value
		switch {
		case item.field == "interpreter" && value == "":
			value = SubtitleStyle.Render("(none, program runs directly)")
		case item.field == "interpreter" && version != "":
			value += " " + SubtitleStyle.Render("("+version+")")
		case value == "":
			value = SubtitleStyle.Render("(empty)")
		}

		if len(failed) == 0 {
			fmt.Fprintf(w, "  %s %-11s %s\n", SuccessStyle.Render("✓"), item.field, value)
			continue
		}
		fmt.Fprintf(w, "  %s %-11s %s\n", ErrorStyle.Render("✗"), item.field, value)
		for _, msg := range failed {
			fmt.Fprintf(w, "      %s\n", WarningStyle.Render(msg))
		}
	}

	fmt.Fprintln(w)
	if len(problems) == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("Ready to train"))
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("%d problem(s) found", len(problems))))
}
