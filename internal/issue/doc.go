// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for trainlaunch.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The issue catalog holds longer Markdown guidance
// for the handful of failures a user can fix on their own, rendered to the
// terminal with glamour.
package issue
