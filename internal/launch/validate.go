// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/trainlaunch/trainlaunch/internal/issue"
	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

// ErrProcessStart marks every failure that prevents the training program from
// starting, whether detected by Validate or by the runtime.
var ErrProcessStart = runtime.ErrProcessStart

var (
	// ErrEmpty reports a value that must be set.
	ErrEmpty = errors.New("is empty")
	// ErrNotAbsolute reports a path that must be absolute.
	ErrNotAbsolute = errors.New("is not an absolute path")
	// ErrPathSeparator reports a name containing '/' or '\'.
	ErrPathSeparator = errors.New("contains a path separator")
	// ErrMissing reports a path that does not exist.
	ErrMissing = errors.New("does not exist")
	// ErrNotRegular reports a program path that is a directory or device.
	ErrNotRegular = errors.New("is not a regular file")
	// ErrNotExecutable reports a program without execute permission.
	ErrNotExecutable = errors.New("is not executable")
	// ErrNotOnPath reports an interpreter that cannot be resolved.
	ErrNotOnPath = errors.New("was not found on PATH")
)

type (
	// Validator checks a Request before its process is started.
	Validator struct {
		// Fs is the filesystem paths are checked against.
		Fs afero.Fs
		// LookPath resolves the interpreter.
		LookPath func(file string) (string, error)
		// GOOS selects platform rules; Windows has no execute bit.
		GOOS string
	}

	// Problem is one reason a Request cannot (or should not) be launched.
	Problem struct {
		// Field names what is wrong: HOMEDIR, MODEL, program, data, hyp or
		// interpreter.
		Field string
		// Value is the offending value, empty for unset variables.
		Value string
		// Code is the exit status reported when this problem blocks a launch.
		Code runtime.ExitCode
		// Issue links to long-form guidance.
		Issue issue.Id
		// Reason is one of the Err* sentinels above.
		Reason error
		// Cause is the underlying error, if any.
		Cause error
	}
)

// NewValidator returns a Validator for the host filesystem and PATH.
func NewValidator() *Validator {
	return &Validator{
		Fs:       afero.NewOsFs(),
		LookPath: exec.LookPath,
		GOOS:     goruntime.GOOS,
	}
}

// Error implements the error interface.
func (p *Problem) Error() string {
	if p.Value == "" {
		return fmt.Sprintf("%s %v", p.Field, p.Reason)
	}
	if p.Cause != nil {
		return fmt.Sprintf("%s %q %v: %v", p.Field, p.Value, p.Reason, p.Cause)
	}
	return fmt.Sprintf("%s %q %v", p.Field, p.Value, p.Reason)
}

// Unwrap exposes the reason and the cause.
func (p *Problem) Unwrap() []error {
	if p.Cause == nil {
		return []error{p.Reason}
	}
	return []error{p.Reason, p.Cause}
}

// Validate returns the first problem that prevents req from starting, as a
// *runtime.ProcessStartError wrapping the *Problem. It returns nil when the
// program can be started.
func (v *Validator) Validate(req *Request) error {
	problems := v.startProblems(req, true)
	if len(problems) == 0 {
		return nil
	}
	p := problems[0]
	return &runtime.ProcessStartError{Path: req.Program(), Code: p.Code, Err: p}
}

// Check returns every problem with req: the start problems Validate reports
// plus missing dataset and hyperparameter files, which the training program
// would only discover after it started.
func (v *Validator) Check(req *Request) []*Problem {
	problems := v.startProblems(req, false)
	for _, f := range []struct{ field, flag string }{{"data", FlagData}, {"hyp", FlagHyp}} {
		path, _ := req.Value(f.flag)
		if !filepath.IsAbs(path) {
			continue // already reported
		}
		if _, err := v.Fs.Stat(path); err != nil {
			problems = append(problems, &Problem{
				Field: f.field, Value: path, Code: runtime.ExitNotFound,
				Issue: issue.ProcessStartFailedId, Reason: ErrMissing, Cause: statCause(err),
			})
		}
	}
	return problems
}

// startProblems collects problems that block the launch, stopping at the
// first one when firstOnly is set.
func (v *Validator) startProblems(req *Request, firstOnly bool) []*Problem {
	var problems []*Problem
	for _, c := range []func(*Request) *Problem{
		v.checkHomeDir,
		v.checkModel,
		v.checkAbsolute("program", req.Program()),
		v.checkAbsolute("data", value(req, FlagData)),
		v.checkAbsolute("hyp", value(req, FlagHyp)),
		v.checkProgram,
		v.checkInterpreter,
	} {
		p := c(req)
		if p == nil {
			continue
		}
		problems = append(problems, p)
		if firstOnly {
			break
		}
	}
	return problems
}

func (v *Validator) checkHomeDir(req *Request) *Problem {
	home := req.HomeDir()
	switch {
	case home == "":
		return &Problem{Field: homeDirEnv, Code: runtime.ExitUsage, Issue: issue.BaseDirUnsetId, Reason: ErrEmpty}
	case !filepath.IsAbs(home):
		return &Problem{Field: homeDirEnv, Value: home, Code: runtime.ExitUsage, Issue: issue.BaseDirUnsetId, Reason: ErrNotAbsolute}
	}
	return nil
}

func (v *Validator) checkModel(req *Request) *Problem {
	model := req.Model()
	switch {
	case model == "":
		return &Problem{Field: modelEnv, Code: runtime.ExitUsage, Issue: issue.InvalidModelNameId, Reason: ErrEmpty}
	case strings.ContainsAny(model, `/\`):
		return &Problem{Field: modelEnv, Value: model, Code: runtime.ExitUsage, Issue: issue.InvalidModelNameId, Reason: ErrPathSeparator}
	}
	return nil
}

func (v *Validator) checkAbsolute(field, path string) func(*Request) *Problem {
	return func(*Request) *Problem {
		if filepath.IsAbs(path) {
			return nil
		}
		reason := ErrNotAbsolute
		if path == "" {
			reason = ErrEmpty
		}
		return &Problem{Field: field, Value: path, Code: runtime.ExitUsage, Issue: issue.ProcessStartFailedId, Reason: reason}
	}
}

func (v *Validator) checkProgram(req *Request) *Problem {
	program := req.Program()
	info, err := v.Fs.Stat(program)
	if err != nil {
		return &Problem{
			Field: "program", Value: program, Code: runtime.ExitNotFound,
			Issue: issue.ProcessStartFailedId, Reason: ErrMissing, Cause: statCause(err),
		}
	}
	if !info.Mode().IsRegular() {
		return &Problem{Field: "program", Value: program, Code: runtime.ExitNotExecutable, Issue: issue.ProcessStartFailedId, Reason: ErrNotRegular}
	}
	// Scripts run through an interpreter only need to be readable.
	if req.Interpreter() == "" && v.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return &Problem{Field: "program", Value: program, Code: runtime.ExitNotExecutable, Issue: issue.ProcessStartFailedId, Reason: ErrNotExecutable}
	}
	return nil
}

func (v *Validator) checkInterpreter(req *Request) *Problem {
	interp := req.Interpreter()
	if interp == "" {
		return nil
	}
	lookPath := v.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(interp); err != nil {
		return &Problem{
			Field: "interpreter", Value: interp, Code: runtime.ExitNotFound,
			Issue: issue.InterpreterNotFoundId, Reason: ErrNotOnPath, Cause: err,
		}
	}
	return nil
}

func value(req *Request, flag string) string {
	v, _ := req.Value(flag)
	return v
}

// statCause drops the "file does not exist" cause, which only repeats the
// reason.
func statCause(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
