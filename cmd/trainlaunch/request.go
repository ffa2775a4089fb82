// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trainlaunch/trainlaunch/internal/config"
	"github.com/trainlaunch/trainlaunch/internal/launch"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

// launchFlags are the flags shared by run, args and check.
type launchFlags struct {
	homeDir   string
	model     string
	singleCls bool
	envFiles  []string
	envVars   []string
}

// preparedLaunch is everything a command needs after flag and config
// resolution.
type preparedLaunch struct {
	cfg     *config.Config
	vars    launch.Variables
	profile config.LaunchConfig
	env     map[string]string
	request *launch.Request
}

func (f *launchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.homeDir, "home-dir", "", "base directory holding GitHub/yolov5 (overrides HOMEDIR)")
	fs.StringVar(&f.model, "model", "", "model name used in the run name (overrides MODEL)")
	fs.BoolVar(&f.singleCls, "single-cls", false, "train as a single-class dataset (overrides launch.single_cls)")
	fs.StringArrayVar(&f.envFiles, "env-file", nil, "load child environment from a dotenv file (repeatable, suffix '?' for optional)")
	fs.StringArrayVarP(&f.envVars, "env-var", "e", nil, "set a child environment variable KEY=VALUE (repeatable)")
}

// prepare loads configuration, merges env files and variables and builds the
// launch request.
func (a *App) prepare(cmd *cobra.Command, f *launchFlags) (*preparedLaunch, error) {
	cfg, err := a.loadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}

	env, err := loadExtraEnv(f.envFiles, f.envVars)
	if err != nil {
		return nil, &ExitError{Code: runtime.ExitUsage, Err: err}
	}

	vars := resolveVariables(cfg.Vars, env, cmd, f)
	profile := cfg.Launch
	if cmd.Flags().Changed("single-cls") {
		profile.SingleCls = f.singleCls
	}

	req, err := launch.Build(profile, vars, env)
	if err != nil {
		return nil, &ExitError{Code: runtime.ExitUsage, Err: err}
	}

	return &preparedLaunch{cfg: cfg, vars: vars, profile: profile, env: env, request: req}, nil
}

// resolveVariables applies variable precedence: flag, then env files and
// --env-var, then the process environment and config file (already merged
// by the config loader), then defaults.
func resolveVariables(base config.VarsConfig, env map[string]string, cmd *cobra.Command, f *launchFlags) launch.Variables {
	vars := launch.Variables{HomeDir: base.HomeDir, Model: base.Model}

	if v, ok := env[config.HomeDirEnv]; ok {
		vars.HomeDir = v
	}
	if v, ok := env[config.ModelEnv]; ok {
		vars.Model = v
	}

	if cmd.Flags().Changed("home-dir") {
		vars.HomeDir = f.homeDir
	}
	if cmd.Flags().Changed("model") {
		vars.Model = f.model
	}
	return vars
}

// loadExtraEnv merges --env-file files in order, then --env-var pairs.
func loadExtraEnv(files, pairs []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, path := range files {
		if err := runtime.LoadEnvFile(env, path, ""); err != nil {
			return nil, err
		}
	}
	for _, kv := range pairs {
		k, v, err := runtime.ParseEnvVar(kv)
		if err != nil {
			return nil, err
		}
		env[k] = v
	}
	return env, nil
}
