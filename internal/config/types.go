// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultModel is the model name used when MODEL is not set anywhere.
	DefaultModel = "yolov5n"
	// DefaultInterpreter runs the training script.
	DefaultInterpreter = "python3"

	// DefaultProgram is the training script, relative to HOMEDIR.
	DefaultProgram = "${HOMEDIR}/GitHub/yolov5/train.py"
	// DefaultData is the dataset manifest.
	DefaultData = "${HOMEDIR}/GitHub/yolov5/datasets/TRAIN_THERMAL_DATASET_2023_06_2023-08-01/dataset.yaml"
	// DefaultHyp is the hyperparameter file.
	DefaultHyp = "${HOMEDIR}/GitHub/yolov5/data/hyps/hyp.scratch-low.yaml"
	// DefaultWeights is resolved by the training program itself, relative to
	// its working directory, and downloaded when missing.
	DefaultWeights = "yolov5n.pt"
	// DefaultRunName tags the output directory of the run.
	DefaultRunName = "${MODEL}_T16-8_D2306-v0_9C"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Config is the complete trainlaunch configuration.
	Config struct {
		// Vars holds the two variables the launch is templated on.
		Vars VarsConfig `json:"vars" mapstructure:"vars" toml:"vars"`
		// Launch describes the training invocation.
		Launch LaunchConfig `json:"launch" mapstructure:"launch" toml:"launch"`
		// UI holds presentation settings.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`

		// Source is the config file the values were read from; empty when only
		// defaults and the environment were used.
		Source string `json:"-" mapstructure:"-" toml:"-"`
	}

	// VarsConfig holds the base-directory and model-name values.
	VarsConfig struct {
		// HomeDir is exported to the child as HOMEDIR.
		HomeDir string `json:"home_dir" mapstructure:"home_dir" toml:"home_dir"`
		// Model is exported to the child as MODEL.
		Model string `json:"model" mapstructure:"model" toml:"model"`
	}

	// LaunchConfig is the launch profile. Every string field, Interpreter and
	// Device included, may reference ${HOMEDIR}, ${MODEL} and keys of Env;
	// other names resolve from the host environment.
	LaunchConfig struct {
		Program     string `json:"program" mapstructure:"program" toml:"program"`
		Interpreter string `json:"interpreter" mapstructure:"interpreter" toml:"interpreter"`
		ImgSize     int    `json:"img_size" mapstructure:"img_size" toml:"img_size"`
		BatchSize   int    `json:"batch_size" mapstructure:"batch_size" toml:"batch_size"`
		Epochs      int    `json:"epochs" mapstructure:"epochs" toml:"epochs"`
		Data        string `json:"data" mapstructure:"data" toml:"data"`
		Weights     string `json:"weights" mapstructure:"weights" toml:"weights"`
		Name        string `json:"name" mapstructure:"name" toml:"name"`
		Hyp         string `json:"hyp" mapstructure:"hyp" toml:"hyp"`
		Workers     int    `json:"workers" mapstructure:"workers" toml:"workers"`
		Device      string `json:"device" mapstructure:"device" toml:"device"`
		// SingleCls appends --single-cls. Off by default: the original script
		// carried the flag commented out.
		SingleCls bool `json:"single_cls" mapstructure:"single_cls" toml:"single_cls"`
		// WorkDir is the child's working directory; empty inherits ours.
		WorkDir string `json:"work_dir,omitempty" mapstructure:"work_dir" toml:"work_dir,omitempty"`
		// Env holds extra child environment values such as CUDA_VISIBLE_DEVICES.
		Env map[string]string `json:"env,omitempty" mapstructure:"env" toml:"env,omitempty"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an error when the scheme is not recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// DefaultConfig returns the configuration equivalent to the original launch
// script. HomeDir is the current user's home directory, or empty when it
// cannot be determined.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Vars: VarsConfig{
			HomeDir: home,
			Model:   DefaultModel,
		},
		Launch: LaunchConfig{
			Program:     DefaultProgram,
			Interpreter: DefaultInterpreter,
			ImgSize:     640,
			BatchSize:   32,
			Epochs:      100,
			Data:        DefaultData,
			Weights:     DefaultWeights,
			Name:        DefaultRunName,
			Hyp:         DefaultHyp,
			Workers:     4,
			Device:      "0",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
