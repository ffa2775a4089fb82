// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
)

func TestArgs_PrintsCommandLine(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "args"); err != nil {
		t.Fatalf("args error = %v", err)
	}
	want := "python3 " + testProgram +
		" --img 640 --batch 32 --epochs 100 --data " + testDataset +
		" --weights yolov5n.pt --name yolov5n_T16-8_D2306-v0_9C --hyp " + testHyp +
		" --workers 4 --device 0\n"
	if got := e.stdout.String(); got != want {
		t.Errorf("args output =\n%q\nwant\n%q", got, want)
	}
	if len(e.rt.Calls) != 0 {
		t.Error("args started the training program")
	}
}

func TestArgs_QuotesSpecialCharacters(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "args", "--home-dir", "/data/my runs"); err != nil {
		t.Fatalf("args error = %v", err)
	}
	if out := e.stdout.String(); !strings.Contains(out, "'/data/my runs/GitHub/yolov5/train.py'") {
		t.Errorf("program path not quoted: %s", out)
	}
}

func TestArgs_WithEnv(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if err := e.run(t, "args", "--with-env", "-e", "WANDB_MODE=off line"); err != nil {
		t.Fatalf("args error = %v", err)
	}
	out := e.stdout.String()
	prefix := "HOMEDIR=" + testHome + " MODEL=yolov5n WANDB_MODE='off line' python3 "
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("args --with-env output =\n%s\nwant prefix\n%s", out, prefix)
	}
}

func TestShellLine(t *testing.T) {
	t.Parallel()

	got, err := shellLine(map[string]string{"B": "2", "A": ""}, []string{"python3", "my train.py"})
	if err != nil {
		t.Fatalf("shellLine() error = %v", err)
	}
	if want := `A='' B=2 python3 'my train.py'`; got != want {
		t.Errorf("shellLine() = %q, want %q", got, want)
	}
}
