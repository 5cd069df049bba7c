// Package format renders catalog numbers and names for Alfred subtitles.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var modalityCodes = map[string]string{
	"text":  "T",
	"image": "I",
	"video": "V",
	"audio": "A",
	"file":  "F",
}

// Price renders a per-token price string as dollars per million tokens.
func Price(perToken string) string {
	val, err := strconv.ParseFloat(strings.TrimSpace(perToken), 64)
	if err != nil {
		return "N/A"
	}
	val *= 1_000_000
	switch {
	case val == 0:
		return "Free"
	case val < 0.01:
		return fmt.Sprintf("$%.4f", val)
	default:
		return fmt.Sprintf("$%.2f", val)
	}
}

// ContextLength renders a token count as a short K-suffixed string,
// e.g. 128000 -> "128K".
func ContextLength(tokens int64) string {
	if tokens == 0 {
		return "0"
	}
	k := float64(tokens) / 1000
	if k == float64(int64(k)) {
		return fmt.Sprintf("%dK", int64(k))
	}
	return fmt.Sprintf("%.1fK", k)
}

// AbbrevModality shortens a modality string such as "text+image->text"
// to "T+I→T". Unrecognized shapes pass through untouched.
func AbbrevModality(modality string) string {
	if modality == "" {
		return ""
	}
	parts := strings.Split(modality, "->")
	if len(parts) != 2 {
		return modality
	}
	return abbrevSide(parts[0]) + "→" + abbrevSide(parts[1])
}

func abbrevSide(side string) string {
	fields := strings.Split(side, "+")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if code, ok := modalityCodes[f]; ok {
			fields[i] = code
		} else {
			fields[i] = f
		}
	}
	return strings.Join(fields, "+")
}

// SanitizeName reduces a provider name to a safe file name: alphanumerics
// plus dot, underscore and hyphen. Distinct names can collide after
// sanitizing; last writer wins, which matches the on-disk cache layout
// already in the wild.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
