package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Card 1", false},
		{"valid unicode", "Überblick", false},
		{"empty", "", false},

		{"too long", strings.Repeat("a", 200), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScenePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"json", "scene.json", ""},
		{"yaml", "dir/scene.yaml", ""},
		{"yml upper", "SCENE.YML", ""},
		{"toml", "scene.toml", ""},

		{"empty", "", ErrCodeInvalidInput},
		{"null byte", "scene\x00.json", ErrCodeInvalidInput},
		{"no extension", "scene", ErrCodeInvalidFormat},
		{"unknown extension", "scene.xml", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateScenePath(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}
