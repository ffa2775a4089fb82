// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateCUE renders cfg as a config.cue document accepted by #Config.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// trainlaunch configuration\n")
	sb.WriteString("// Values may reference ${HOMEDIR} and ${MODEL}.\n\n")

	sb.WriteString("vars: {\n")
	fmt.Fprintf(&sb, "\thome_dir: %q\n", cfg.Vars.HomeDir)
	fmt.Fprintf(&sb, "\tmodel:    %q\n", cfg.Vars.Model)
	sb.WriteString("}\n")

	l := cfg.Launch
	sb.WriteString("\nlaunch: {\n")
	fmt.Fprintf(&sb, "\tprogram:     %q\n", l.Program)
	fmt.Fprintf(&sb, "\tinterpreter: %q\n", l.Interpreter)
	fmt.Fprintf(&sb, "\timg_size:    %d\n", l.ImgSize)
	fmt.Fprintf(&sb, "\tbatch_size:  %d\n", l.BatchSize)
	fmt.Fprintf(&sb, "\tepochs:      %d\n", l.Epochs)
	fmt.Fprintf(&sb, "\tdata:        %q\n", l.Data)
	fmt.Fprintf(&sb, "\tweights:     %q\n", l.Weights)
	fmt.Fprintf(&sb, "\tname:        %q\n", l.Name)
	fmt.Fprintf(&sb, "\thyp:         %q\n", l.Hyp)
	fmt.Fprintf(&sb, "\tworkers:     %d\n", l.Workers)
	fmt.Fprintf(&sb, "\tdevice:      %q\n", l.Device)
	fmt.Fprintf(&sb, "\tsingle_cls:  %v\n", l.SingleCls)
	if l.WorkDir != "" {
		fmt.Fprintf(&sb, "\twork_dir:    %q\n", l.WorkDir)
	}
	if len(l.Env) > 0 {
		sb.WriteString("\tenv: {\n")
		for _, k := range slices.Sorted(maps.Keys(l.Env)) {
			fmt.Fprintf(&sb, "\t\t%q: %q\n", k, l.Env[k])
		}
		sb.WriteString("\t}\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders cfg as TOML, for tooling that does not speak CUE.
func GenerateTOML(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(out), nil
}
