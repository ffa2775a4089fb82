// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"os"
	"slices"
	"strings"
)

type (
	// EnvBuilder produces the child's environment as "KEY=VALUE" entries.
	EnvBuilder interface {
		Build(overrides map[string]string) []string
	}

	// DefaultEnvBuilder starts from the host environment and applies overrides
	// on top: an override replaces the host entry with the same name.
	DefaultEnvBuilder struct {
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used.
		Environ func() []string
	}

	// MockEnvBuilder returns a fixed environment.
	MockEnvBuilder struct {
		Env []string
	}
)

// NewDefaultEnvBuilder creates a new DefaultEnvBuilder.
func NewDefaultEnvBuilder() *DefaultEnvBuilder {
	return &DefaultEnvBuilder{}
}

// Build merges overrides into the host environment. The result is sorted by
// name so the child sees a deterministic environment.
func (b *DefaultEnvBuilder) Build(overrides map[string]string) []string {
	environ := b.Environ
	if environ == nil {
		environ = os.Environ
	}

	env := make(map[string]string)
	for _, kv := range environ() {
		k, v, ok := strings.Cut(kv, "=")
		// Windows carries per-drive entries like "=C:=C:\"
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	maps.Copy(env, overrides)

	return EnvToSlice(env)
}

// Build returns a copy of the mock environment.
func (m *MockEnvBuilder) Build(_ map[string]string) []string {
	return slices.Clone(m.Env)
}

// EnvToSlice converts an environment map to sorted "KEY=VALUE" entries.
func EnvToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		out = append(out, k+"="+env[k])
	}
	return out
}
