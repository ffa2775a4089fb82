// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/trainlaunch/trainlaunch/internal/issue"
	"github.com/trainlaunch/trainlaunch/internal/launch"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
	"github.com/trainlaunch/trainlaunch/internal/testutil"
)

func TestRun_LaunchesTrainingProgram(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "run"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if len(e.rt.Calls) != 1 {
		t.Fatalf("runtime called %d times, want 1", len(e.rt.Calls))
	}

	ec := e.rt.LastCall()
	want := []string{
		"python3", testProgram,
		"--img", "640", "--batch", "32", "--epochs", "100",
		"--data", testDataset,
		"--weights", "yolov5n.pt",
		"--name", "yolov5n_T16-8_D2306-v0_9C",
		"--hyp", testHyp,
		"--workers", "4", "--device", "0",
	}
	if got := ec.Argv(); !slices.Equal(got, want) {
		t.Errorf("Argv =\n%v\nwant\n%v", got, want)
	}
	if ec.Env["HOMEDIR"] != testHome || ec.Env["MODEL"] != "yolov5n" {
		t.Errorf("Env = %v", ec.Env)
	}
	if ec.TTY {
		t.Error("TTY set without --tty")
	}
}

func TestRun_PropagatesChildExitCode(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.rt.Result = runtime.NewExitCodeResult(3)

	err := e.run(t, "run")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 || exitErr.Err != nil {
		t.Errorf("ExitError = {%d, %v}, want {3, nil}", exitErr.Code, exitErr.Err)
	}
}

func TestRun_StartFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		code    runtime.ExitCode
		issueID issue.Id
	}{
		{"empty home dir", []string{"run", "--home-dir", ""}, runtime.ExitUsage, issue.BaseDirUnsetId},
		{"model with separator", []string{"run", "--model", "a/b"}, runtime.ExitUsage, issue.InvalidModelNameId},
		{"missing checkout", []string{"run", "--home-dir", "/elsewhere"}, runtime.ExitNotFound, issue.ProcessStartFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEnv(t)

			err := e.run(t, tt.args...)
			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != tt.code {
				t.Fatalf("run error = %v, want ExitError code %d", err, tt.code)
			}
			if !errors.Is(err, launch.ErrProcessStart) {
				t.Errorf("error does not wrap ErrProcessStart: %v", err)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.Issue != tt.issueID {
				t.Errorf("ActionableError = %+v, want issue %d", ae, tt.issueID)
			}
			if len(e.rt.Calls) != 0 {
				t.Error("runtime called for a request that cannot start")
			}
		})
	}
}

func TestRun_VariablePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantModel string
	}{
		{"config", []string{"run"}, "yolov5n"},
		{"env var beats config", []string{"run", "-e", "MODEL=yolov5s"}, "yolov5s"},
		{"flag beats env var", []string{"run", "-e", "MODEL=yolov5s", "--model", "yolov5x"}, "yolov5x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEnv(t)

			if err := e.run(t, tt.args...); err != nil {
				t.Fatalf("run error = %v", err)
			}
			ec := e.rt.LastCall()
			if ec.Env["MODEL"] != tt.wantModel {
				t.Errorf("MODEL = %q, want %q", ec.Env["MODEL"], tt.wantModel)
			}
			name, _ := launch.NewRequest(ec.Program, ec.Interpreter, ec.Args, ec.Env, "").Value(launch.FlagName)
			if want := tt.wantModel + "_T16-8_D2306-v0_9C"; name != want {
				t.Errorf("--name = %q, want %q", name, want)
			}
		})
	}
}

func TestRun_EnvFile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	envFile := filepath.Join(t.TempDir(), "train.env")
	testutil.MustWriteFile(t, envFile, "MODEL=yolov5m\nCUDA_VISIBLE_DEVICES=1\n", 0o644)

	if err := e.run(t, "run", "--env-file", envFile); err != nil {
		t.Fatalf("run error = %v", err)
	}
	env := e.rt.LastCall().Env
	if env["MODEL"] != "yolov5m" || env["CUDA_VISIBLE_DEVICES"] != "1" {
		t.Errorf("Env = %v", env)
	}
}

func TestRun_BadEnvVar(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	err := e.run(t, "run", "-e", "NOEQUALS")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != runtime.ExitUsage {
		t.Errorf("run error = %v, want ExitError code 2", err)
	}
}

func TestRun_SingleClsAndTTY(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "run", "--single-cls", "--tty"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	ec := e.rt.LastCall()
	if ec.Args[len(ec.Args)-1] != launch.FlagSingleCls {
		t.Errorf("Args = %v, want --single-cls last", ec.Args)
	}
	if !ec.TTY {
		t.Error("--tty not forwarded")
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "run", "--dry-run"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if len(e.rt.Calls) != 0 {
		t.Error("dry run started the training program")
	}
	out := e.stdout.String()
	for _, want := range []string{"Dry Run", testProgram, "--name yolov5n_T16-8_D2306-v0_9C", "MODEL=yolov5n", "Ready to launch"} {
		if !strings.Contains(out, want) {
			t.Errorf("dry run output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_DryRunReportsProblem(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "run", "--dry-run", "--home-dir", ""); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if out := e.stdout.String(); !strings.Contains(out, "HOMEDIR is empty") {
		t.Errorf("dry run output missing the validation problem:\n%s", out)
	}
}

func TestRun_ConfigFlagForwarded(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "--config", "/etc/trainlaunch.cue", "run", "--dry-run"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if e.loader.opts.ConfigFilePath != "/etc/trainlaunch.cue" {
		t.Errorf("ConfigFilePath = %q", e.loader.opts.ConfigFilePath)
	}
}

func TestRun_ConfigLoadError(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.loader.err = errors.New("broken config")

	if err := e.run(t, "run"); err == nil || !strings.Contains(err.Error(), "broken config") {
		t.Errorf("run error = %v, want the config error", err)
	}
	if len(e.rt.Calls) != 0 {
		t.Error("runtime called despite config error")
	}
}
