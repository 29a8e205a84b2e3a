package server

import (
	"testing"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

func TestFormatPower(t *testing.T) {
	tests := []struct {
		in   catalog.Scalar
		want string
	}{
		{"", "-"},
		{"450", "450 mW"},
		{"0.5", "0.5 mW"},
		{"1000", "1.0 W"},
		{"2500", "2.5 W"},
		{"900000", "900.0 W"},
		{"1200000", "1.2 W"},
		{"varies", "varies"},
	}
	for _, tt := range tests {
		if got := formatPower(tt.in); got != tt.want {
			t.Errorf("formatPower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatArea(t *testing.T) {
	if got := formatArea("4.5"); got != "4.5 mm²" {
		t.Errorf("formatArea(4.5) = %q", got)
	}
	if got := formatArea(""); got != "-" {
		t.Errorf("formatArea of empty = %q", got)
	}
}

func TestTypeClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hw-arch", "tag-hw-arch"},
		{"hw_arch", "tag-hw-arch"},
		{"HW Arch", "tag-hw-arch"},
		{"hw-circuit", "tag-hw-circuit"},
		{"sw", "tag-sw"},
		{"co-design", "tag-codesign"},
		{"system", "tag-system"},
		{"something-else", "tag-neutral"},
		{"", "tag-neutral"},
	}
	for _, tt := range tests {
		if got := typeClass(tt.in); got != tt.want {
			t.Errorf("typeClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := ideaTypeClass("bogus"); got != "" {
		t.Errorf("ideaTypeClass of unknown type = %q, want empty", got)
	}
}

func TestCountryFlag(t *testing.T) {
	if got := countryFlag("CN"); got != "\U0001F1E8\U0001F1F3" {
		t.Errorf("countryFlag(CN) = %q", got)
	}
	if got := countryFlag("us"); got != "\U0001F1FA\U0001F1F8" {
		t.Errorf("countryFlag should uppercase, got %q", got)
	}
	if got := countryFlag(""); got != "" {
		t.Errorf("empty code = %q", got)
	}
	if got := countryFlag("C1"); got != "" {
		t.Errorf("non-letter code = %q", got)
	}
}
