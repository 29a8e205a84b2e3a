package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

// formatPower rescales a milliwatt value for readability: values from a
// thousand up display in watts, everything below stays in milliwatts.
// Non-numeric values pass through; absent values display as a dash.
func formatPower(v catalog.Scalar) string {
	if v == "" {
		return "-"
	}
	f, ok := v.Float()
	if !ok {
		return v.String()
	}
	if f >= 1_000_000 {
		return fmt.Sprintf("%.1f W", f/1_000_000)
	}
	if f >= 1_000 {
		return fmt.Sprintf("%.1f W", f/1_000)
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + " mW"
}

// formatArea appends the mm² unit, dash when absent.
func formatArea(v catalog.Scalar) string {
	if v == "" {
		return "-"
	}
	return v.String() + " mm²"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// typeClass maps an innovation type to its pill CSS class. Type spellings in
// the dataset vary ("hw-arch", "hw_arch", "HW Arch"); normalization strips
// separators and lowercases before matching.
func typeClass(typ string) string {
	switch normalizeType(typ) {
	case "hwarch":
		return "tag-hw-arch"
	case "hwcircuit":
		return "tag-hw-circuit"
	case "sw":
		return "tag-sw"
	case "codesign":
		return "tag-codesign"
	case "system":
		return "tag-system"
	default:
		return "tag-neutral"
	}
}

// ideaTypeClass is the idea-card variant of typeClass; unknown types get no
// class rather than a neutral one.
func ideaTypeClass(typ string) string {
	switch normalizeType(typ) {
	case "hwarch":
		return "type-hw-arch"
	case "hwcircuit":
		return "type-hw-circuit"
	case "sw":
		return "type-sw"
	case "codesign":
		return "type-codesign"
	case "system":
		return "type-system"
	default:
		return ""
	}
}

func normalizeType(typ string) string {
	t := strings.ToLower(typ)
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, t)
}

// countryFlag builds the flag emoji from an ISO country code by shifting
// each letter into the regional-indicator block.
func countryFlag(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(r + 127397)
	}
	return b.String()
}
