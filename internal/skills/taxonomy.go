// Package skills holds the hand-curated skill taxonomy used to extract and
// compare skill tokens. The table itself is data, not logic: it lives in
// taxonomy.json so it can be extended and tested independently of the
// scoring algorithm.
package skills

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	_ "embed"
)

//go:embed taxonomy.json
var taxonomyData []byte

type inference struct {
	Pattern string   `json:"pattern"`
	Skills  []string `json:"skills"`
}

type taxonomyFile struct {
	Keywords   []string    `json:"keywords"`
	Groups     [][]string  `json:"groups"`
	Inferences []inference `json:"inferences"`
}

// Taxonomy resolves skill tokens: extraction from free text and relatedness
// between two tokens.
type Taxonomy struct {
	keywords   []string
	groupIndex map[string][]int
	inferences []compiledInference
}

type compiledInference struct {
	re     *regexp.Regexp
	skills []string
}

var defaultTaxonomy = mustLoad()

func mustLoad() *Taxonomy {
	t, err := load(taxonomyData)
	if err != nil {
		panic(fmt.Sprintf("skills: embedded taxonomy is invalid: %v", err))
	}
	return t
}

func load(data []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	t := &Taxonomy{
		keywords:   make([]string, 0, len(file.Keywords)),
		groupIndex: make(map[string][]int),
	}

	seen := make(map[string]bool, len(file.Keywords))
	for _, kw := range file.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		t.keywords = append(t.keywords, kw)
	}

	for i, group := range file.Groups {
		for _, member := range group {
			member = strings.ToLower(strings.TrimSpace(member))
			if member == "" {
				continue
			}
			t.groupIndex[member] = append(t.groupIndex[member], i)
		}
	}

	for _, inf := range file.Inferences {
		re, err := regexp.Compile(inf.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile inference pattern %q: %w", inf.Pattern, err)
		}
		t.inferences = append(t.inferences, compiledInference{re: re, skills: inf.Skills})
	}

	return t, nil
}

// Default returns the taxonomy backed by the embedded data asset.
func Default() *Taxonomy { return defaultTaxonomy }

// Extract returns the deduplicated, sorted set of known skill tokens found in
// the text: literal keyword membership plus title-pattern inference.
func (t *Taxonomy) Extract(text string) []string {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	found := make(map[string]bool)
	for _, kw := range t.keywords {
		if strings.Contains(text, kw) {
			found[kw] = true
		}
	}
	for _, inf := range t.inferences {
		if inf.re.MatchString(text) {
			for _, s := range inf.skills {
				found[strings.ToLower(s)] = true
			}
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Similar reports whether two skill tokens should count as a match: equal
// after normalization, substring containment for tokens longer than four
// characters, or co-membership in a synonym group. Groups are deliberately
// narrow so unrelated professions never cross-match, while tool literacy
// still implies the parent skill.
func (t *Taxonomy) Similar(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) > 4 && len(b) > 4 && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}
	for _, ga := range t.groupIndex[a] {
		for _, gb := range t.groupIndex[b] {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

// AnySimilar reports whether any candidate is similar to the target.
func (t *Taxonomy) AnySimilar(target string, candidates []string) bool {
	for _, c := range candidates {
		if t.Similar(target, c) {
			return true
		}
	}
	return false
}
