// SPDX-License-Identifier: MPL-2.0

// Package testutil holds small helpers shared by tests: environment and
// working-directory manipulation with automatic restore, and file fixtures.
package testutil
