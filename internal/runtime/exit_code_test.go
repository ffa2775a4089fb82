// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestExitCode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    ExitCode
		wantErr bool
	}{
		{0, false},
		{1, false},
		{127, false},
		{255, false},
		{-1, true},
		{256, true},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("errors.Is(err, ErrInvalidExitCode) = false for %v", err)
			}
		})
	}
}

func TestExitCode_Predicates(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false")
	}
	if ExitFailure.IsSuccess() {
		t.Error("ExitFailure.IsSuccess() = true")
	}
	for _, c := range []ExitCode{ExitNotFound, ExitNotExecutable} {
		if !c.IsStartFailure() {
			t.Errorf("%d.IsStartFailure() = false", c)
		}
	}
	if ExitUsage.IsStartFailure() || ExitCode(3).IsStartFailure() {
		t.Error("IsStartFailure() = true for a non start-failure code")
	}
}
