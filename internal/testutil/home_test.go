// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func homeKey() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir(t *testing.T) {
	original, hadOriginal := os.LookupEnv(homeKey())
	tmpDir := t.TempDir()

	t.Run("set", func(t *testing.T) {
		SetHomeDir(t, tmpDir)
		if got := os.Getenv(homeKey()); got != tmpDir {
			t.Errorf("%s = %q, want %q", homeKey(), got, tmpDir)
		}
	})

	got, ok := os.LookupEnv(homeKey())
	if ok != hadOriginal || got != original {
		t.Errorf("after cleanup %s = %q (set=%v), want %q (set=%v)", homeKey(), got, ok, original, hadOriginal)
	}
}

func TestIsolateLaunchVars(t *testing.T) {
	restore := MustSetenv(t, "HOMEDIR", "/from/shell")
	defer restore()

	t.Run("isolated", func(t *testing.T) {
		IsolateLaunchVars(t)
		if _, ok := os.LookupEnv("HOMEDIR"); ok {
			t.Error("HOMEDIR still set")
		}
	})

	if got := os.Getenv("HOMEDIR"); got != "/from/shell" {
		t.Errorf("HOMEDIR after cleanup = %q, want /from/shell", got)
	}
}

func TestMustChdir(t *testing.T) {
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	t.Run("chdir", func(t *testing.T) {
		MustChdir(t, dir)
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		// macOS temp dirs live behind a /private symlink.
		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(wd)
		if got != want {
			t.Errorf("wd = %q, want %q", got, want)
		}
	})

	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("wd after cleanup = %q, want %q", wd, original)
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "train.env")
	MustWriteFile(t, path, "MODEL=yolov5n\n", 0o600)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "MODEL=yolov5n\n" {
		t.Errorf("content = %q", data)
	}
}
