package icon

import (
	"reflect"
	"strings"
	"testing"
)

func TestCandidatesDeterministic(t *testing.T) {
	g := NewGenerator()
	a := g.Candidates("NousResearch", "/tmp/icons")
	b := g.Candidates("NousResearch", "/tmp/icons")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("candidate generation must be deterministic")
	}
	if len(a) == 0 {
		t.Fatal("expected candidates")
	}
}

func TestCandidatesPriorityAndDedup(t *testing.T) {
	g := NewGenerator()
	candidates := g.Candidates("Mistral", "/tmp/icons")

	if candidates[0].Category != categoryMapped {
		t.Fatalf("expected curated CDN icon first, got %s", candidates[0].Category)
	}
	if !strings.HasSuffix(candidates[0].URL, "Mistral.png") {
		t.Fatalf("unexpected mapped URL %s", candidates[0].URL)
	}
	if candidates[1].Category != categoryDomainMapped {
		t.Fatalf("expected curated favicon second, got %s", candidates[1].Category)
	}

	// The curated CDN icon is Mistral.png; the .png heuristic guesses the
	// same URL and must have been dropped in favor of the curated slot.
	seen := make(map[string]int)
	for _, c := range candidates {
		seen[c.URL]++
	}
	for url, n := range seen {
		if n > 1 {
			t.Fatalf("duplicate URL %s appears %d times", url, n)
		}
	}
	for _, c := range candidates {
		if c.Category == categoryHeuristic && strings.HasSuffix(c.URL, "/Mistral.png") {
			t.Fatalf("heuristic duplicate of curated URL survived: %s", c.URL)
		}
	}

	// The curated domain is mistral.ai; the domain heuristic reaches the
	// same favicon URL, so it must be represented only once, at the curated
	// position.
	favURL := candidates[1].URL
	for i, c := range candidates {
		if i != 1 && c.URL == favURL {
			t.Fatalf("curated favicon URL duplicated at position %d", i)
		}
	}
}

func TestCandidateDomainsSuffixStripping(t *testing.T) {
	domains := candidateDomains("NousResearch")
	want := []string{
		"https://nousresearch.ai",
		"https://nousresearch.com",
		"https://nousresearch.io",
		"https://nous.ai",
		"https://nous.com",
		"https://nous.io",
	}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("unexpected domains %v", domains)
	}
}

func TestCandidateDomainsLongerRootsFirst(t *testing.T) {
	domains := candidateDomains("DeepCogito Labs")
	want := []string{
		"https://deepcogitolabs.ai",
		"https://deepcogitolabs.com",
		"https://deepcogitolabs.io",
		"https://deepcogito.ai",
		"https://deepcogito.com",
		"https://deepcogito.io",
	}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("unexpected domains %v", domains)
	}
}

func TestCandidateDomainsStripsDots(t *testing.T) {
	domains := candidateDomains("z.ai")
	// "z.ai" cleans to "zai"; stripping the ai suffix leaves "z".
	want := []string{
		"https://zai.ai",
		"https://zai.com",
		"https://zai.io",
		"https://z.ai",
		"https://z.com",
		"https://z.io",
	}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("unexpected domains %v", domains)
	}
}

func TestCandidatesTargetFilenames(t *testing.T) {
	g := NewGenerator()
	candidates := g.Candidates("Arcee AI", "/tmp/icons")
	for _, c := range candidates {
		if strings.ContainsAny(c.Filename, "/\\ ") {
			t.Fatalf("unsafe target filename %q", c.Filename)
		}
		if !strings.HasPrefix(c.Filename, "ArceeAI") {
			t.Fatalf("filename %q should derive from the sanitized name", c.Filename)
		}
	}
}
