// SPDX-License-Identifier: MPL-2.0

// Package launch turns configuration into a single invocation of the
// training program.
//
// Build expands the launch profile against two variables, HOMEDIR and MODEL,
// into an immutable Request: the program path, an ordered flag/value list and
// the environment overrides handed to the child. A Validator rejects requests
// whose paths are malformed or whose program cannot be started, and the
// Launcher runs a valid request through a runtime.Runtime and reports the
// child's exit code.
package launch
