// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/trainlaunch/trainlaunch/internal/config"
	"github.com/trainlaunch/trainlaunch/internal/launch"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reaches
	// configuration, the runtime and the output streams through it.
	App struct {
		Config    ConfigProvider
		Runtime   runtime.Runtime
		Validator *launch.Validator
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer

		// Global flag state, bound by NewRootCommand.
		verbose    bool
		configPath string
		// colorScheme is the glamour style for rendered issues.
		colorScheme string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// Runtime defaults to a NativeRuntime that logs through the CLI logger.
		Runtime   runtime.Runtime
		Validator *launch.Validator
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Validator == nil {
		deps.Validator = launch.NewValidator()
	}

	return &App{
		Config:    deps.Config,
		Runtime:   deps.Runtime,
		Validator: deps.Validator,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,

		colorScheme: string(config.ColorSchemeAuto),
	}, nil
}

// loadConfig loads configuration honoring --config. ui.verbose turns on
// verbose output when --verbose was not given.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose {
		a.verbose = true
	}
	a.colorScheme = cfg.UI.ColorScheme.String()
	return cfg, nil
}

func (a *App) logger() *log.Logger {
	return newLogger(a.stderr, a.verbose)
}

// launcher returns a Launcher bound to the app's streams and runtime.
func (a *App) launcher(logger *log.Logger) *launch.Launcher {
	rt := a.Runtime
	if rt == nil {
		rt = runtime.NewNativeRuntime(logger)
	}
	return &launch.Launcher{
		Runtime:   rt,
		Validator: a.Validator,
		Logger:    logger,
		Stdin:     a.stdin,
		Stdout:    a.stdout,
		Stderr:    a.stderr,
	}
}
