// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/trainlaunch/trainlaunch/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "trainlaunch"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// EnvPrefix prefixes environment overrides for every key except the
	// launch variables (TRAINLAUNCH_LAUNCH_EPOCHS, TRAINLAUNCH_UI_VERBOSE, ...).
	EnvPrefix = "TRAINLAUNCH"
	// HomeDirEnv binds vars.home_dir.
	HomeDirEnv = "HOMEDIR"
	// ModelEnv binds vars.model.
	ModelEnv = "MODEL"

	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the trainlaunch configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultConfigPath returns the path config init writes to.
func DefaultConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// newViper returns a Viper instance carrying defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("vars.home_dir", defaults.Vars.HomeDir)
	v.SetDefault("vars.model", defaults.Vars.Model)
	v.SetDefault("launch.program", defaults.Launch.Program)
	v.SetDefault("launch.interpreter", defaults.Launch.Interpreter)
	v.SetDefault("launch.img_size", defaults.Launch.ImgSize)
	v.SetDefault("launch.batch_size", defaults.Launch.BatchSize)
	v.SetDefault("launch.epochs", defaults.Launch.Epochs)
	v.SetDefault("launch.data", defaults.Launch.Data)
	v.SetDefault("launch.weights", defaults.Launch.Weights)
	v.SetDefault("launch.name", defaults.Launch.Name)
	v.SetDefault("launch.hyp", defaults.Launch.Hyp)
	v.SetDefault("launch.workers", defaults.Launch.Workers)
	v.SetDefault("launch.device", defaults.Launch.Device)
	v.SetDefault("launch.single_cls", defaults.Launch.SingleCls)
	v.SetDefault("launch.work_dir", defaults.Launch.WorkDir)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// An explicitly empty HOMEDIR must survive so the launcher can reject it
	// instead of silently falling back to the user's home directory.
	v.AllowEmptyEnv(true)
	_ = v.BindEnv("vars.home_dir", HomeDirEnv)
	_ = v.BindEnv("vars.model", ModelEnv)

	return v
}

// loadWithOptions performs option-driven config loading without touching
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, err
	}

	var env map[string]string
	if path != "" {
		env, err = loadCUEIntoViper(v, path)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Compare it with the output of 'trainlaunch config show --format cue'").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// Viper lower-cases map keys; environment variable names are case
	// sensitive, so the env table comes straight from the CUE value.
	cfg.Launch.Env = env
	cfg.Source = path

	if err := cfg.UI.ColorScheme.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(EnvPrefix + "_UI_COLOR_SCHEME").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// resolveConfigPath picks the config file to read. An explicit path must
// exist; otherwise the config directory is tried, then the working
// directory. An empty result means defaults only.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'trainlaunch config init' to create a default file").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", err
		}
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}

	return "", nil
}

// loadCUEIntoViper validates the CUE file at path against #Config and merges
// it into v. It returns launch.env with its original key case.
func loadCUEIntoViper(v *viper.Viper, path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > maxConfigFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err, path)
	}

	var env map[string]string
	if envValue := unified.LookupPath(cue.ParsePath("launch.env")); envValue.Exists() {
		if err := envValue.Decode(&env); err != nil {
			return nil, formatCUEError(err, path)
		}
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}

	return env, nil
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// CreateDefaultConfig writes the default config file unless one exists.
// It returns the path and whether a file was written.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	created, err := WriteDefaultConfig(cfgPath)
	if err != nil {
		return "", false, err
	}
	return cfgPath, created, nil
}

// WriteDefaultConfig writes the default config to cfgPath, creating parent
// directories. An existing file is left untouched and reported as not created.
func WriteDefaultConfig(cfgPath string) (bool, error) {
	if _, err := os.Stat(cfgPath); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
