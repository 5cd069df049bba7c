package format

import "testing"

func TestPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "Free"},
		{"0.000003", "$3.00"},
		{"0.000000002", "$0.0020"},
		{"", "N/A"},
		{"abc", "N/A"},
	}
	for _, tc := range cases {
		if got := Price(tc.in); got != tc.want {
			t.Fatalf("Price(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContextLength(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{128000, "128K"},
		{32768, "32.8K"},
		{4096, "4.1K"},
		{1000000, "1000K"},
	}
	for _, tc := range cases {
		if got := ContextLength(tc.in); got != tc.want {
			t.Fatalf("ContextLength(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbbrevModality(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"text->text", "T→T"},
		{"text+image->text", "T+I→T"},
		{"audio->text", "A→T"},
		{"weird", "weird"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := AbbrevModality(tc.in); got != tc.want {
			t.Fatalf("AbbrevModality(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mistral", "Mistral"},
		{"Arcee AI", "ArceeAI"},
		{"z.ai", "z.ai"},
		{"a/b\\c", "abc"},
		{"Nous_Research-2", "Nous_Research-2"},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
