// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"maps"
	"slices"

	"github.com/trainlaunch/trainlaunch/internal/runtime"
)

// Request is one invocation of the training program. It is built once and
// never modified; accessors return copies.
type Request struct {
	program     string
	interpreter string
	args        []string
	env         map[string]string
	workDir     string
}

// NewRequest copies its inputs into a new Request.
func NewRequest(program, interpreter string, args []string, env map[string]string, workDir string) *Request {
	return &Request{
		program:     program,
		interpreter: interpreter,
		args:        slices.Clone(args),
		env:         maps.Clone(env),
		workDir:     workDir,
	}
}

// Program returns the path of the training program.
func (r *Request) Program() string { return r.program }

// Interpreter returns the interpreter the program runs with, or "".
func (r *Request) Interpreter() string { return r.interpreter }

// Args returns the ordered flag/value list.
func (r *Request) Args() []string { return slices.Clone(r.args) }

// Env returns the environment overrides.
func (r *Request) Env() map[string]string { return maps.Clone(r.env) }

// WorkDir returns the child's working directory, or "" to inherit.
func (r *Request) WorkDir() string { return r.workDir }

// HomeDir returns the HOMEDIR value the request was built with.
func (r *Request) HomeDir() string { return r.env[homeDirEnv] }

// Model returns the MODEL value the request was built with.
func (r *Request) Model() string { return r.env[modelEnv] }

// Value returns the value following flag in the argument list.
func (r *Request) Value(flag string) (string, bool) {
	i := slices.Index(r.args, flag)
	if i < 0 || i+1 >= len(r.args) {
		return "", false
	}
	return r.args[i+1], true
}

// Has reports whether flag appears in the argument list.
func (r *Request) Has(flag string) bool {
	return slices.Contains(r.args, flag)
}

// Argv returns the full command line: interpreter (when set), program, args.
func (r *Request) Argv() []string {
	argv := make([]string, 0, len(r.args)+2)
	if r.interpreter != "" {
		argv = append(argv, r.interpreter)
	}
	argv = append(argv, r.program)
	return append(argv, r.args...)
}

// ExecutionContext converts the request for the runtime, with the process's
// standard streams attached.
func (r *Request) ExecutionContext(ctx context.Context) *runtime.ExecutionContext {
	ec := runtime.NewExecutionContext(ctx, r.program, r.Args()...)
	ec.Interpreter = r.interpreter
	ec.Env = r.Env()
	ec.WorkDir = r.workDir
	return ec
}
