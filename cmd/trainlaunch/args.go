// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

func newArgsCommand(app *App) *cobra.Command {
	var (
		flags   launchFlags
		withEnv bool
	)

	argsCmd := &cobra.Command{
		Use:   "args",
		Short: "Print the training command line",
		Long: `Print the command line 'trainlaunch run' would execute, quoted for a
POSIX shell. With --with-env, the environment overrides are prefixed as
assignments so the output can be pasted into a terminal as-is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.prepare(cmd, &flags)
			if err != nil {
				return err
			}

			var env map[string]string
			if withEnv {
				env = p.request.Env()
			}
			line, err := shellLine(env, p.request.Argv())
			if err != nil {
				return &ExitError{Code: runtime.ExitUsage, Err: err}
			}
			fmt.Fprintln(app.stdout, line)
			return nil
		},
	}

	flags.register(argsCmd)
	argsCmd.Flags().BoolVar(&withEnv, "with-env", false, "prefix environment overrides as KEY=VALUE assignments")

	return argsCmd
}

// shellLine renders env assignments followed by argv as one line safe to
// paste into bash.
func shellLine(env map[string]string, argv []string) (string, error) {
	words := make([]string, 0, len(env)+len(argv))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		q, err := syntax.Quote(env[k], syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote %s: %w", k, err)
		}
		words = append(words, k+"="+q)
	}
	for _, w := range argv {
		q, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote %q: %w", w, err)
		}
		words = append(words, q)
	}
	return strings.Join(words, " "), nil
}
