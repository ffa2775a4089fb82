// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strconv"

	"mvdan.cc/sh/v3/shell"

	"github.com/trainlaunch/trainlaunch/internal/config"
)

// Flags understood by the training program, in the order they are passed.
const (
	FlagImg       = "--img"
	FlagBatch     = "--batch"
	FlagEpochs    = "--epochs"
	FlagData      = "--data"
	FlagWeights   = "--weights"
	FlagName      = "--name"
	FlagHyp       = "--hyp"
	FlagWorkers   = "--workers"
	FlagDevice    = "--device"
	FlagSingleCls = "--single-cls"

	homeDirEnv = config.HomeDirEnv
	modelEnv   = config.ModelEnv
)

// ErrInvalidRequest is the sentinel wrapped by every RequestError.
var ErrInvalidRequest = errors.New("invalid launch request")

// RequestError reports a launch profile value that could not be turned into
// part of a Request.
type RequestError struct {
	// Field is the launch profile key, e.g. "data".
	Field string
	// Value is the unexpanded template.
	Value string
	Err   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("launch.%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes the sentinel and the cause.
func (e *RequestError) Unwrap() []error { return []error{ErrInvalidRequest, e.Err} }

// Build expands the launch profile into a Request.
//
// The child environment is cfg.Env, then extraEnv, then HOMEDIR and MODEL
// from vars; later entries win. Templates reference these names as ${NAME}
// and fall back to the host environment for anything else. Paths are joined
// by plain concatenation, so an empty HOMEDIR yields "/GitHub/..." paths
// that Validate rejects.
func Build(cfg config.LaunchConfig, vars Variables, extraEnv map[string]string) (*Request, error) {
	env := make(map[string]string, len(cfg.Env)+len(extraEnv)+2)
	maps.Copy(env, cfg.Env)
	maps.Copy(env, extraEnv)
	maps.Copy(env, vars.Env())

	x := &expander{env: env}
	program := x.expand("program", cfg.Program)
	data := x.expand("data", cfg.Data)
	weights := x.expand("weights", cfg.Weights)
	name := x.expand("name", cfg.Name)
	hyp := x.expand("hyp", cfg.Hyp)
	device := x.expand("device", cfg.Device)
	workDir := x.expand("work_dir", cfg.WorkDir)
	interpreter := x.expand("interpreter", cfg.Interpreter)
	if x.err != nil {
		return nil, x.err
	}

	args := []string{
		FlagImg, strconv.Itoa(cfg.ImgSize),
		FlagBatch, strconv.Itoa(cfg.BatchSize),
		FlagEpochs, strconv.Itoa(cfg.Epochs),
		FlagData, data,
		FlagWeights, weights,
		FlagName, name,
		FlagHyp, hyp,
		FlagWorkers, strconv.Itoa(cfg.Workers),
		FlagDevice, device,
	}
	if cfg.SingleCls {
		args = append(args, FlagSingleCls)
	}

	return NewRequest(program, interpreter, args, env, workDir), nil
}

// expander expands templates and keeps the first error.
type expander struct {
	env map[string]string
	err error
}

func (x *expander) expand(field, tmpl string) string {
	if x.err != nil || tmpl == "" {
		return tmpl
	}
	out, err := shell.Expand(tmpl, x.lookup)
	if err != nil {
		x.err = &RequestError{Field: field, Value: tmpl, Err: err}
		return ""
	}
	return out
}

// lookup prefers request values, so an explicitly empty HOMEDIR stays empty
// instead of falling through to the host.
func (x *expander) lookup(name string) string {
	if v, ok := x.env[name]; ok {
		return v
	}
	return os.Getenv(name)
}
