// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/trainlaunch/trainlaunch/internal/config"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

const (
	formatText = "text"
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `trainlaunch config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage trainlaunch configuration",
		Long: `Manage trainlaunch configuration.

Configuration is stored in:
  - Linux: ~/.config/trainlaunch/config.cue
  - macOS: ~/Library/Application Support/trainlaunch/config.cue
  - Windows: %APPDATA%\trainlaunch\config.cue

A config.cue in the working directory is used when the file above does not
exist. HOMEDIR, MODEL and TRAINLAUNCH_* environment variables override it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			return showConfig(app.stdout, cfg, format)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, cue or toml")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Long: `Create the default configuration file.

The file is written to the --config path when one is given, otherwise to the
platform configuration directory. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := app.initConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configPath
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}

// initConfig writes the default config to the --config path, or to the
// platform default when none was given.
func (a *App) initConfig() (string, bool, error) {
	if a.configPath == "" {
		return config.CreateDefaultConfig()
	}
	created, err := config.WriteDefaultConfig(a.configPath)
	return a.configPath, created, err
}

func showConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case formatCUE:
		fmt.Fprint(w, config.GenerateCUE(cfg))
		return nil
	case formatTOML:
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	case formatText:
	default:
		return &ExitError{
			Code: runtime.ExitUsage,
			Err:  fmt.Errorf("unknown format %q (expected %s, %s or %s)", format, formatText, formatCUE, formatTOML),
		}
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	kv := func(indent, key string, value any) {
		fmt.Fprintf(w, "%s%s: %s\n", indent, key, valueStyle.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if cfg.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("vars"))
	kv("  ", "home_dir", cfg.Vars.HomeDir)
	kv("  ", "model", cfg.Vars.Model)

	l := cfg.Launch
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("launch"))
	kv("  ", "program", l.Program)
	kv("  ", "interpreter", l.Interpreter)
	kv("  ", "img_size", l.ImgSize)
	kv("  ", "batch_size", l.BatchSize)
	kv("  ", "epochs", l.Epochs)
	kv("  ", "data", l.Data)
	kv("  ", "weights", l.Weights)
	kv("  ", "name", l.Name)
	kv("  ", "hyp", l.Hyp)
	kv("  ", "workers", l.Workers)
	kv("  ", "device", l.Device)
	kv("  ", "single_cls", l.SingleCls)
	if l.WorkDir != "" {
		kv("  ", "work_dir", l.WorkDir)
	}
	if len(l.Env) > 0 {
		fmt.Fprintln(w, "  env:")
		for _, k := range slices.Sorted(maps.Keys(l.Env)) {
			kv("    ", k, l.Env[k])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	kv("  ", "color_scheme", cfg.UI.ColorScheme)
	kv("  ", "verbose", cfg.UI.Verbose)

	return nil
}
