// SPDX-License-Identifier: MPL-2.0

package launch

import "github.com/trainlaunch/trainlaunch/internal/config"

// Variables are the two values the launch profile is templated on.
type Variables struct {
	// HomeDir is the base directory holding GitHub/yolov5.
	HomeDir string
	// Model names the model; it prefixes the run name.
	Model string
}

// Env returns the variables as child environment entries.
func (v Variables) Env() map[string]string {
	return map[string]string{
		config.HomeDirEnv: v.HomeDir,
		config.ModelEnv:   v.Model,
	}
}
