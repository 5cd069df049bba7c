package icon

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fbettag/alfred-openrouter/internal/format"
)

// Candidate categories, recorded so a successful download can report which
// rule found it.
const (
	categoryMapped          = "openrouter-mapped"
	categoryDomainMapped    = "domain-mapped"
	categoryHeuristic       = "openrouter-heuristic"
	categoryDomainHeuristic = "domain-heuristic"
)

const (
	defaultIconBase    = "https://openrouter.ai/images/icons/"
	defaultFaviconBase = "https://t0.gstatic.com/faviconV2?client=SOCIAL&type=FAVICON&fallback_opts=TYPE,SIZE,URL&size=256&url="
)

// openrouterIcons maps lowercased provider names to curated file names on
// the OpenRouter icon CDN.
var openrouterIcons = map[string]string{
	"anthropic":  "Anthropic.svg",
	"cohere":     "Cohere.png",
	"deepseek":   "DeepSeek.png",
	"kwaipilot":  "Kwaipilot.png",
	"meta":       "Meta.png",
	"microsoft":  "Microsoft.svg",
	"mistral":    "Mistral.png",
	"openai":     "OpenAI.svg",
	"perplexity": "Perplexity.svg",
	"qwen":       "Qwen.png",
	"thedrummer": "TheDrummer.png",
}

// providerDomains maps lowercased provider names to their known sites, used
// through the favicon service.
var providerDomains = map[string]string{
	"ai21":            "https://ai21.ai",
	"aionlabs":        "https://aionlabs.ai",
	"alibaba":         "https://alibaba.com",
	"allenai":         "https://allen.ai",
	"amazon":          "https://amazon.ai",
	"anthropic":       "https://anthropic.com",
	"arcee ai":        "https://arcee.ai",
	"baidu":           "https://baidu.com",
	"bytedance seed":  "https://seed.bytedance.com/",
	"cohere":          "https://cohere.com",
	"deep cogito":     "https://deepcogito.ai",
	"deepseek":        "https://deepseek.com",
	"essentialai":     "https://essential.ai",
	"google":          "https://google.com",
	"gryphe":          "https://gryphe.com",
	"ibm":             "https://ibm.com",
	"inception":       "https://www.inceptionlabs.ai/",
	"inflection":      "https://inflection.com",
	"kwaipilot":       "https://kwaipilot.ai",
	"liquidai":        "https://liquid.ai",
	"mancer":          "https://mancer.com",
	"meituan":         "https://meituan.com",
	"meta":            "https://meta.ai",
	"microsoft":       "https://microsoft.com",
	"minimax":         "https://minimaxi.com/",
	"mistral":         "https://mistral.ai",
	"mistralai":       "https://mistral.ai",
	"moonshotai":      "https://moonshot.ai",
	"morph":           "https://morph.ai",
	"neversleep":      "https://neversleep.io",
	"nex agi":         "https://nexagi.ai",
	"nous":            "https://nous.ai",
	"nousresearch":    "https://nousresearch.com",
	"nvidia":          "https://nvidia.ai",
	"openai":          "https://openai.com",
	"opengvlab":       "https://opengvlab.com",
	"openrouter":      "https://openrouter.ai",
	"perplexity":      "https://perplexity.ai",
	"prime intellect": "https://primeintellect.ai",
	"qwen":            "https://qwen.ai",
	"relace":          "https://relace.ai",
	"stepfun":         "https://stepfun.ai",
	"switchpoint":     "https://switchpoint.ai",
	"tencent":         "https://tencent.com",
	"tng":             "https://tng.ai",
	"upstage":         "https://upstage.ai",
	"venice":          "https://venice.ai",
	"writer":          "https://writer.ai",
	"xai":             "https://x.ai",
	"xiaomi":          "https://xiaomi.com",
	"z.ai":            "https://z.ai",
}

// Candidate is one icon source to try: a URL plus where its bytes land
// locally if they validate.
type Candidate struct {
	URL      string
	Filename string
	Path     string
	Category string
}

// Generator produces the prioritized candidate list for a provider. The
// base URLs are fields so tests can point them at local servers.
type Generator struct {
	IconBase    string
	FaviconBase string
}

// NewGenerator returns a generator aimed at the production endpoints.
func NewGenerator() Generator {
	return Generator{IconBase: defaultIconBase, FaviconBase: defaultFaviconBase}
}

// Candidates builds the ordered, URL-deduplicated candidate list for one
// provider. Order encodes priority: curated sources first, then cheap
// guesses. The result is deterministic for a given name.
func (g Generator) Candidates(provider, iconsDir string) []Candidate {
	safeName := format.SanitizeName(provider)
	key := strings.ToLower(provider)
	var candidates []Candidate

	// 1. Curated icon on the OpenRouter CDN.
	if mapped, ok := openrouterIcons[key]; ok {
		ext := filepath.Ext(mapped)
		if ext == "" {
			ext = ".svg"
		}
		candidates = append(candidates, g.cdnCandidate(mapped, safeName+ext, iconsDir, categoryMapped))
	}

	// 2. Curated domain through the favicon service.
	if domain, ok := providerDomains[key]; ok {
		candidates = append(candidates, g.faviconCandidate(domain, safeName, iconsDir, categoryDomainMapped))
	}

	// 3. Guessed file names on the CDN.
	clean := strings.ReplaceAll(provider, " ", "")
	for _, ext := range []string{".svg", ".png", ".jpg", ".jpeg"} {
		candidates = append(candidates, g.cdnCandidate(clean+ext, safeName+ext, iconsDir, categoryHeuristic))
	}

	// 4. Guessed domains through the favicon service.
	for _, domain := range candidateDomains(provider) {
		candidates = append(candidates, g.faviconCandidate(domain, safeName, iconsDir, categoryDomainHeuristic))
	}

	return dedupeByURL(candidates)
}

func (g Generator) cdnCandidate(remoteName, localName, iconsDir, category string) Candidate {
	return Candidate{
		URL:      g.IconBase + remoteName,
		Filename: localName,
		Path:     filepath.Join(iconsDir, localName),
		Category: category,
	}
}

func (g Generator) faviconCandidate(domain, safeName, iconsDir, category string) Candidate {
	localName := safeName + ".png"
	return Candidate{
		URL:      g.FaviconBase + url.QueryEscape(domain),
		Filename: localName,
		Path:     filepath.Join(iconsDir, localName),
		Category: category,
	}
}

// candidateDomains guesses official sites from a display name: normalize,
// optionally strip a trailing ai/lab/labs/research/tech, then cross the
// roots (longest first) with the .ai/.com/.io TLDs.
func candidateDomains(provider string) []string {
	clean := strings.ToLower(provider)
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")

	roots := []string{clean}
	for _, suffix := range []string{"ai", "lab", "labs", "research", "tech"} {
		if strings.HasSuffix(clean, suffix) && len(clean) > len(suffix) {
			roots = append(roots, strings.TrimSuffix(clean, suffix))
		}
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return len(roots[i]) > len(roots[j])
	})

	var domains []string
	seen := make(map[string]struct{})
	for _, root := range roots {
		for _, tld := range []string{"ai", "com", "io"} {
			domain := fmt.Sprintf("https://%s.%s", root, tld)
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			domains = append(domains, domain)
		}
	}
	return domains
}

func dedupeByURL(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		out = append(out, c)
	}
	return out
}
