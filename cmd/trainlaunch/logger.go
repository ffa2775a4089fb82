// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Verbose mode lowers the level to debug
// and adds timestamps so long training runs can be correlated with the log.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "trainlaunch",
		Level:           level,
		ReportTimestamp: verbose,
	})
}
