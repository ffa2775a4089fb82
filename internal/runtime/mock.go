// SPDX-License-Identifier: MPL-2.0

package runtime

import "sync"

// MockRuntime records execution contexts and returns a canned Result.
type MockRuntime struct {
	mu sync.Mutex

	// Result is returned by Execute and ExecuteCapture. A nil Result means
	// success.
	Result *Result
	// Calls holds copies of every context passed in, in order.
	Calls []ExecutionContext
}

// Name returns the runtime name.
func (m *MockRuntime) Name() string { return "mock" }

// Execute records ctx and returns the canned result.
func (m *MockRuntime) Execute(ctx *ExecutionContext) *Result {
	return m.record(ctx)
}

// ExecuteCapture records ctx and returns the canned result.
func (m *MockRuntime) ExecuteCapture(ctx *ExecutionContext) *Result {
	return m.record(ctx)
}

func (m *MockRuntime) record(ctx *ExecutionContext) *Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, *ctx)
	if m.Result == nil {
		return NewExitCodeResult(ExitSuccess)
	}
	r := *m.Result
	return &r
}

// LastCall returns the most recent context, or nil when none was recorded.
func (m *MockRuntime) LastCall() *ExecutionContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	c := m.Calls[len(m.Calls)-1]
	return &c
}
