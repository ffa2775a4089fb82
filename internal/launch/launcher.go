// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/trainlaunch/trainlaunch/internal/config"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

type (
	// Launcher validates a Request and runs it to completion.
	Launcher struct {
		Runtime   runtime.Runtime
		Validator *Validator
		Logger    *log.Logger

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Options tune a single launch.
	Options struct {
		// TTY attaches the child to a pseudo-terminal.
		TTY bool
	}
)

// NewLauncher returns a Launcher running natively on the host with the
// process's standard streams.
func NewLauncher(logger *log.Logger) *Launcher {
	return &Launcher{
		Runtime:   runtime.NewNativeRuntime(logger),
		Validator: NewValidator(),
		Logger:    logger,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Run builds a Request from cfg and vars and launches it.
func (l *Launcher) Run(ctx context.Context, cfg config.LaunchConfig, vars Variables, extraEnv map[string]string, opts Options) (runtime.ExitCode, error) {
	req, err := Build(cfg, vars, extraEnv)
	if err != nil {
		return runtime.ExitUsage, err
	}
	return l.Launch(ctx, req, opts)
}

// Launch validates req, starts exactly one child process and waits for it.
//
// The returned code is the child's exit status. The error is non-nil only
// when the child never started; it then wraps ErrProcessStart and the code
// is 2 (invalid request), 126 (not executable) or 127 (not found). A child
// exiting non-zero is not an error.
func (l *Launcher) Launch(ctx context.Context, req *Request, opts Options) (runtime.ExitCode, error) {
	logger := l.logger()
	logger.Debug("launch request",
		"HOMEDIR", req.HomeDir(), "MODEL", req.Model(),
		"program", req.Program(), "interpreter", req.Interpreter(), "args", len(req.Args()))

	if err := l.validator().Validate(req); err != nil {
		return startFailureCode(err), err
	}

	ec := req.ExecutionContext(ctx)
	ec.Stdin, ec.Stdout, ec.Stderr = l.Stdin, l.Stdout, l.Stderr
	ec.TTY = opts.TTY

	result := l.Runtime.Execute(ec)
	if result.Error != nil {
		logger.Debug("launch failed", "error", result.Error)
		return result.ExitCode, result.Error
	}
	logger.Debug("training program exited", "code", int(result.ExitCode))
	return result.ExitCode, nil
}

func (l *Launcher) validator() *Validator {
	if l.Validator != nil {
		return l.Validator
	}
	return NewValidator()
}

func (l *Launcher) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

func startFailureCode(err error) runtime.ExitCode {
	var startErr *runtime.ProcessStartError
	if errors.As(err, &startErr) {
		return startErr.Code
	}
	return runtime.ExitFailure
}
