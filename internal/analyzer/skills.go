package analyzer

import (
	"regexp"
	"strings"
)

// SkillMatcher finds taxonomy phrases in posting text. Patterns are
// compiled once per taxonomy; matching is case-insensitive and bounded so
// "sql" never matches inside "Sqlite" and "api" never matches inside
// "rapid".
type SkillMatcher struct {
	taxonomy Taxonomy
	patterns map[string]*regexp.Regexp
	// phrase order across the whole taxonomy, for deterministic output
	order []string
}

// NewSkillMatcher compiles boundary-safe patterns for every phrase in the
// taxonomy.
func NewSkillMatcher(tax Taxonomy) *SkillMatcher {
	m := &SkillMatcher{
		taxonomy: tax,
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, cat := range tax {
		for _, skill := range cat.Skills {
			if _, ok := m.patterns[skill]; ok {
				continue
			}
			m.patterns[skill] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
			m.order = append(m.order, skill)
		}
	}
	return m
}

// Match returns every taxonomy phrase present in the text, each at most
// once, in taxonomy declaration order.
func (m *SkillMatcher) Match(text string) []string {
	var found []string
	for _, skill := range m.order {
		if m.patterns[skill].MatchString(text) {
			found = append(found, skill)
		}
	}
	return found
}

// MatchEnhanced folds deep-NLP surface forms into the match set. A phrase
// is added when it contains or is contained by a noun chunk, or is
// contained in an entity string. The result is the union with the rule
// match over text; enhanced output can only add skills.
func (m *SkillMatcher) MatchEnhanced(text string, nounChunks, entities []string) []string {
	seen := make(map[string]bool)
	for _, skill := range m.Match(text) {
		seen[skill] = true
	}

	lowered := make([]string, 0, len(nounChunks))
	for _, chunk := range nounChunks {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(chunk)))
	}
	loweredEnts := make([]string, 0, len(entities))
	for _, ent := range entities {
		loweredEnts = append(loweredEnts, strings.ToLower(strings.TrimSpace(ent)))
	}

	for _, skill := range m.order {
		if seen[skill] {
			continue
		}
		for _, chunk := range lowered {
			if chunk == "" {
				continue
			}
			if strings.Contains(chunk, skill) || strings.Contains(skill, chunk) {
				seen[skill] = true
				break
			}
		}
		if seen[skill] {
			continue
		}
		for _, ent := range loweredEnts {
			if ent != "" && strings.Contains(ent, skill) {
				seen[skill] = true
				break
			}
		}
	}

	var found []string
	for _, skill := range m.order {
		if seen[skill] {
			found = append(found, skill)
		}
	}
	return found
}

// Categorize groups skills under the first taxonomy category listing each
// one. Categories with no matched skills are omitted.
func (m *SkillMatcher) Categorize(skills []string) map[string][]string {
	firstCategory := make(map[string]string)
	for _, cat := range m.taxonomy {
		for _, skill := range cat.Skills {
			if _, ok := firstCategory[skill]; !ok {
				firstCategory[skill] = cat.Name
			}
		}
	}

	grouped := make(map[string][]string)
	for _, skill := range skills {
		if cat, ok := firstCategory[skill]; ok {
			grouped[cat] = append(grouped[cat], skill)
		}
	}
	return grouped
}
