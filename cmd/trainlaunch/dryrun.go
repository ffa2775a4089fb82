// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/trainlaunch/trainlaunch/internal/config"
)

// renderDryRun prints the resolved request without executing it: variables,
// program, interpreter, every flag/value pair, environment overrides and the
// validation outcome.
func renderDryRun(w io.Writer, p *preparedLaunch, validateErr error) {
	req := p.request

	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	source := p.cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("Config:"), source)
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(config.HomeDirEnv+":"), p.vars.HomeDir)
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(config.ModelEnv+":"), p.vars.Model)
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("Program:"), req.Program())
	if req.Interpreter() != "" {
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("Interpreter:"), req.Interpreter())
	}
	if req.WorkDir() != "" {
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("WorkDir:"), req.WorkDir())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, CmdStyle.Render("  Arguments:"))
	args := req.Args()
	for i := 0; i < len(args); i++ {
		// Bare flags such as --single-cls have no value.
		if i+1 < len(args) && !isFlag(args[i+1]) {
			fmt.Fprintf(w, "    %s %s\n", args[i], args[i+1])
			i++
			continue
		}
		fmt.Fprintf(w, "    %s\n", args[i])
	}

	env := req.Env()
	fmt.Fprintln(w)
	fmt.Fprintln(w, CmdStyle.Render("  Environment:"))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		fmt.Fprintf(w, "    %s=%s\n", k, env[k])
	}

	fmt.Fprintln(w)
	if validateErr != nil {
		fmt.Fprintf(w, "  %s %s\n", WarningStyle.Render("Would fail:"), validateErr)
	} else {
		fmt.Fprintf(w, "  %s\n", SuccessStyle.Render("Ready to launch"))
	}
}

func isFlag(s string) bool {
	return len(s) > 2 && s[:2] == "--"
}
