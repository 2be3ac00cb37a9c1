package gsn

import (
	"strings"
	"testing"

	"github.com/matzehuels/gsnview/pkg/errors"
)

func mustParse(t *testing.T, name, src string) *Module {
	t.Helper()
	m, err := Parse(name, []byte(src))
	if err != nil {
		t.Fatalf("Parse(%s): %v", name, err)
	}
	return m
}

func TestValidateClean(t *testing.T) {
	m := mustParse(t, "main", mainYAML)
	var d errors.Diagnostics
	Validate(m, &d)
	if d.HasErrors() {
		t.Errorf("unexpected errors: %v", d.Errors)
	}
	if len(d.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", d.Warnings)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code errors.Code
	}{
		{
			"solution with support",
			"Sn1:\n  supportedBy: [Sn2]\nSn2:\n  text: x\n",
			errors.ErrCodeInvalidReference,
		},
		{
			"strategy supported by solution",
			"S1:\n  supportedBy: [Sn1]\nSn1:\n  text: x\n",
			errors.ErrCodeInvalidReference,
		},
		{
			"goal supported by context",
			"G1:\n  supportedBy: [C1]\nC1:\n  text: x\n",
			errors.ErrCodeInvalidReference,
		},
		{
			"context is a goal",
			"G1:\n  supportedBy: [Sn1]\n  inContextOf: [G2]\nSn1:\n  text: x\nG2:\n  undeveloped: true\n",
			errors.ErrCodeInvalidReference,
		},
		{
			"self support",
			"G1:\n  supportedBy: [G1]\n",
			errors.ErrCodeInvalidReference,
		},
		{
			"undeveloped with support",
			"G1:\n  undeveloped: true\n  supportedBy: [Sn1]\nSn1:\n  text: x\n",
			errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d errors.Diagnostics
			Validate(mustParse(t, "m", tt.yaml), &d)
			if len(d.Errors) != 1 {
				t.Fatalf("errors = %v, want exactly one", d.Errors)
			}
			if got := errors.GetCode(d.Errors[0]); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, d.Errors[0])
			}
		})
	}
}

func TestValidateUnresolvedLeftToResolver(t *testing.T) {
	var d errors.Diagnostics
	Validate(mustParse(t, "m", "G1:\n  supportedBy: [G9]\n  inContextOf: [C9]\n"), &d)
	if d.HasErrors() {
		t.Errorf("unexpected errors: %v", d.Errors)
	}
}

func TestValidateUndevelopedWarning(t *testing.T) {
	var d errors.Diagnostics
	Validate(mustParse(t, "m", "G1:\n  text: open\n"), &d)
	if d.HasErrors() || len(d.Warnings) != 1 {
		t.Fatalf("diagnostics = %+v", d)
	}
	if d.Warnings[0].ID != "G1" {
		t.Errorf("warning = %v", d.Warnings[0])
	}
}

func TestCheckReferences(t *testing.T) {
	main := mustParse(t, "main", "G1:\n  supportedBy: [G2]\nG2:\n  undeveloped: true\nG3:\n  undeveloped: true\nC1:\n  text: orphan\n")
	sub := mustParse(t, "sub", "Sn1:\n  text: used from main\nA1:\n  text: orphan too\n")
	// main references Sn1 from another module
	main.Element("G3").SupportedBy = []string{"Sn1"}
	main.Element("G3").Undeveloped = false

	var d errors.Diagnostics
	CheckReferences([]*Module{main, sub}, &d)

	var got []string
	for _, w := range d.Warnings {
		got = append(got, w.String())
	}
	joined := strings.Join(got, "\n")
	for _, want := range []string{
		"main: C1: element is not referenced",
		"sub: A1: element is not referenced",
		"main: module has 2 top-level goals: [G1 G3]",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing warning %q in\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "Sn1") {
		t.Errorf("cross-module reference reported as unreferenced:\n%s", joined)
	}
}
