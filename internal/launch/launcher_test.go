// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

func newTestLauncher(t *testing.T, rt runtime.Runtime) (*Launcher, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	return &Launcher{
		Runtime:   rt,
		Validator: newTestValidator(newCheckout(t)),
		Logger:    logger,
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	}, &logs
}

func TestLauncher_Launch(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	rt := &runtime.MockRuntime{}
	l, logs := newTestLauncher(t, rt)
	req := mustBuild(t, defaultProfile(), Variables{HomeDir: testHome, Model: "yolov5n"}, nil)

	code, err := l.Launch(t.Context(), req, Options{TTY: true})
	if err != nil || code != 0 {
		t.Fatalf("Launch() = (%d, %v), want (0, nil)", code, err)
	}
	if len(rt.Calls) != 1 {
		t.Fatalf("runtime called %d times, want exactly 1", len(rt.Calls))
	}

	ec := rt.LastCall()
	if !slices.Equal(ec.Argv(), req.Argv()) {
		t.Errorf("Argv = %v, want %v", ec.Argv(), req.Argv())
	}
	if ec.Env["HOMEDIR"] != testHome || ec.Env["MODEL"] != "yolov5n" {
		t.Errorf("Env = %v", ec.Env)
	}
	if !ec.TTY || ec.Stdout != l.Stdout {
		t.Error("launch options or streams not forwarded")
	}
	if !bytes.Contains(logs.Bytes(), []byte("launch request")) {
		t.Errorf("debug log missing launch record: %s", logs.String())
	}
}

func TestLauncher_PassesExitCodeThrough(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	for _, want := range []runtime.ExitCode{1, 3, 137} {
		t.Run(want.String(), func(t *testing.T) {
			t.Parallel()

			l, _ := newTestLauncher(t, &runtime.MockRuntime{Result: runtime.NewExitCodeResult(want)})
			req := mustBuild(t, defaultProfile(), Variables{HomeDir: testHome, Model: "m"}, nil)

			code, err := l.Launch(t.Context(), req, Options{})
			if err != nil {
				t.Fatalf("Launch() error = %v, a failing child is not a launcher error", err)
			}
			if code != want {
				t.Errorf("Launch() code = %d, want %d", code, want)
			}
		})
	}
}

func TestLauncher_InvalidRequestNeverStarts(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	rt := &runtime.MockRuntime{}
	l, _ := newTestLauncher(t, rt)
	req := mustBuild(t, defaultProfile(), Variables{HomeDir: "", Model: "m"}, nil)

	code, err := l.Launch(t.Context(), req, Options{})
	if !errors.Is(err, ErrProcessStart) {
		t.Fatalf("Launch() error = %v, want ErrProcessStart", err)
	}
	if code != runtime.ExitUsage {
		t.Errorf("Launch() code = %d, want %d", code, runtime.ExitUsage)
	}
	if len(rt.Calls) != 0 {
		t.Error("runtime was called for an invalid request")
	}
}

func TestLauncher_RuntimeStartFailure(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	startErr := runtime.NewProcessStartError("python3", errors.New("exec format error"))
	rt := &runtime.MockRuntime{Result: runtime.NewErrorResult(startErr.Code, startErr)}
	l, _ := newTestLauncher(t, rt)
	req := mustBuild(t, defaultProfile(), Variables{HomeDir: testHome, Model: "m"}, nil)

	code, err := l.Launch(t.Context(), req, Options{})
	if !errors.Is(err, ErrProcessStart) || code != runtime.ExitNotExecutable {
		t.Errorf("Launch() = (%d, %v), want (126, ErrProcessStart)", code, err)
	}
}

func TestLauncher_Run(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	t.Run("builds and launches", func(t *testing.T) {
		t.Parallel()

		rt := &runtime.MockRuntime{}
		l, _ := newTestLauncher(t, rt)
		extra := map[string]string{"CUDA_VISIBLE_DEVICES": "2"}

		code, err := l.Run(t.Context(), defaultProfile(), Variables{HomeDir: testHome, Model: "m"}, extra, Options{})
		if err != nil || code != 0 {
			t.Fatalf("Run() = (%d, %v)", code, err)
		}
		if rt.LastCall().Env["CUDA_VISIBLE_DEVICES"] != "2" {
			t.Error("extra env not forwarded")
		}
	})

	t.Run("invalid template", func(t *testing.T) {
		t.Parallel()

		rt := &runtime.MockRuntime{}
		l, _ := newTestLauncher(t, rt)
		cfg := defaultProfile()
		cfg.Program = "${HOMEDIR"

		code, err := l.Run(t.Context(), cfg, Variables{HomeDir: testHome, Model: "m"}, nil, Options{})
		if !errors.Is(err, ErrInvalidRequest) || code != runtime.ExitUsage {
			t.Errorf("Run() = (%d, %v), want (2, ErrInvalidRequest)", code, err)
		}
		if len(rt.Calls) != 0 {
			t.Error("runtime was called for an unbuildable request")
		}
	})
}
