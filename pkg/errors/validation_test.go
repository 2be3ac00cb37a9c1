package errors

import (
	"strings"
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"goal", "G1", false},
		{"solution", "Sn12", false},
		{"dotted", "M1.G1", false},
		{"unicode", "Zielß", false},

		{"empty", "", true},
		{"too long", strings.Repeat("G", 300), true},
		{"space", "G 1", true},
		{"tab", "G\t1", true},
		{"control char", "G\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateModuleName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "main", false},
		{"with dash", "sub-1", false},
		{"with dot", "safety.case", false},

		{"empty", "", true},
		{"starts with dash", "-main", true},
		{"slash", "a/b", true},
		{"space", "my module", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModuleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModuleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
