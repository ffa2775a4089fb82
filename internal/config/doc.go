// SPDX-License-Identifier: MPL-2.0

// Package config loads trainlaunch settings using Viper with CUE as the file
// format.
//
// Settings are layered, lowest to highest: built-in defaults (the literal
// values of the original launch script), config.cue, then environment
// variables. HOMEDIR and MODEL bind directly to vars.home_dir and vars.model;
// every other key can be overridden with TRAINLAUNCH_<SECTION>_<KEY>.
//
// config.cue is validated against the embedded #Config schema before it is
// merged, so typos and out-of-range values are reported with their CUE path.
package config
