// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home variable (HOME, or USERPROFILE on
// Windows) at dir for the rest of the test.
func SetHomeDir(t testing.TB, dir string) {
	t.Helper()

	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	t.Cleanup(MustSetenv(t, key, dir))
}

// IsolateLaunchVars clears HOMEDIR, MODEL and XDG_CONFIG_HOME so tests never
// pick up values from the developer's shell.
func IsolateLaunchVars(t testing.TB) {
	t.Helper()
	for _, key := range []string{"HOMEDIR", "MODEL", "XDG_CONFIG_HOME"} {
		t.Cleanup(MustUnsetenv(t, key))
	}
}
