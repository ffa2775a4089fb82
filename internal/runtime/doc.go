// SPDX-License-Identifier: MPL-2.0

// Package runtime starts the external training process.
//
// NativeRuntime runs a program directly (no shell) with an ordered argument
// list, the host environment plus overrides, and inherited standard streams.
// The child's exit status is reported as an ExitCode; failures to start the
// process at all are reported as a ProcessStartError, using the shell's
// conventions of 127 for "not found" and 126 for "not executable".
//
// In TTY mode the child is attached to a pseudo-terminal so that progress
// bars drawn by the training program render as they would in an interactive
// shell.
package runtime
