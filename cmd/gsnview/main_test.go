package main

import (
	"context"
	"fmt"
	"testing"

	gsnerrors "github.com/matzehuels/gsnview/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", fmt.Errorf("boom"), exitFailure},
		{"validation", &gsnerrors.ValidationError{Errors: []error{fmt.Errorf("x")}}, exitValidation},
		{"wrapped validation", fmt.Errorf("check: %w", &gsnerrors.ValidationError{}), exitValidation},
		{"interrupt", fmt.Errorf("render: %w", context.Canceled), exitInterrupt},
		{"input", gsnerrors.New(gsnerrors.ErrCodeInvalidInput, "bad"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
