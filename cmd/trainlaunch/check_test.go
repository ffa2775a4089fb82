// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

func TestCheck_ReadySetup(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.rt.Result = &runtime.Result{Output: "Python 3.11.4\n"}

	if err := e.run(t, "check"); err != nil {
		t.Fatalf("check error = %v", err)
	}
	out := e.stdout.String()
	for _, want := range []string{"Training setup", "Python 3.11.4", testDataset, "Ready to train"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}

	// Only the interpreter probe runs; training is never started.
	if len(e.rt.Calls) != 1 {
		t.Fatalf("runtime called %d times, want 1 (the probe)", len(e.rt.Calls))
	}
	if got := e.rt.LastCall().Argv(); len(got) != 2 || got[0] != "python3" || got[1] != "--version" {
		t.Errorf("probe argv = %v, want [python3 --version]", got)
	}
}

func TestCheck_ReportsEveryProblem(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	if err := e.fs.Remove(testDataset); err != nil {
		t.Fatal(err)
	}
	if err := e.fs.Remove(testHyp); err != nil {
		t.Fatal(err)
	}

	err := e.run(t, "check")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != runtime.ExitFailure {
		t.Fatalf("check error = %v, want ExitError code 1", err)
	}

	out := e.stdout.String()
	if !strings.Contains(out, "2 problem(s) found") {
		t.Errorf("check output missing problem count:\n%s", out)
	}
	if strings.Count(out, "does not exist") != 2 {
		t.Errorf("want both missing files reported:\n%s", out)
	}
}

func TestCheck_NoInterpreter(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.cfg.Launch.Interpreter = ""
	if err := e.fs.Chmod(testProgram, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := e.run(t, "check"); err != nil {
		t.Fatalf("check error = %v", err)
	}
	if len(e.rt.Calls) != 0 {
		t.Error("interpreter probe ran without an interpreter")
	}
	if out := e.stdout.String(); !strings.Contains(out, "program runs directly") {
		t.Errorf("check output:\n%s", out)
	}
}
