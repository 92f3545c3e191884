package analyzer

import (
	"slices"
	"testing"
)

func TestSkillMatcherBoundaries(t *testing.T) {
	m := NewSkillMatcher(DefaultTaxonomy())

	tests := []struct {
		name    string
		text    string
		present []string
		absent  []string
	}{
		{
			name:    "sql does not match inside sqlite",
			text:    "Experience with Sqlite storage engines",
			absent:  []string{"sql"},
		},
		{
			name:    "api does not match inside rapid",
			text:    "A rapid growth environment",
			absent:  []string{"api"},
		},
		{
			name:    "case insensitive match",
			text:    "Strong SQL and Python skills, REST API design",
			present: []string{"sql", "python", "rest", "api"},
		},
		{
			name:    "multi word phrase",
			text:    "You will own Product Strategy and a/b testing",
			present: []string{"product strategy", "a/b testing"},
		},
		{
			name:    "punctuation boundary",
			text:    "Tools: jira, figma.",
			present: []string{"jira", "figma"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.text)
			for _, want := range tt.present {
				if !slices.Contains(got, want) {
					t.Errorf("Match() missing %q, got %v", want, got)
				}
			}
			for _, bad := range tt.absent {
				if slices.Contains(got, bad) {
					t.Errorf("Match() should not contain %q, got %v", bad, got)
				}
			}
		})
	}
}

func TestSkillMatcherSetSemantics(t *testing.T) {
	m := NewSkillMatcher(DefaultTaxonomy())
	got := m.Match("sql here, SQL there, and more sql everywhere")

	count := 0
	for _, s := range got {
		if s == "sql" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Match() reported sql %d times, want 1", count)
	}
}

func TestMatchEnhancedIsAdditive(t *testing.T) {
	m := NewSkillMatcher(DefaultTaxonomy())
	text := "Strong sql skills required"

	base := m.Match(text)
	enhanced := m.MatchEnhanced(text, []string{"the product roadmap"}, []string{"Tableau dashboards"})

	for _, s := range base {
		if !slices.Contains(enhanced, s) {
			t.Errorf("enhanced result lost rule match %q", s)
		}
	}
	if !slices.Contains(enhanced, "roadmap") {
		t.Errorf("enhanced result missing chunk-derived skill, got %v", enhanced)
	}
	if !slices.Contains(enhanced, "tableau") {
		t.Errorf("enhanced result missing entity-derived skill, got %v", enhanced)
	}
}

func TestCategorizeFirstCategoryWins(t *testing.T) {
	m := NewSkillMatcher(DefaultTaxonomy())

	// sql is listed in both technical and analytics; technical declares first
	grouped := m.Categorize([]string{"sql", "figma", "scrum"})

	if !slices.Contains(grouped["technical"], "sql") {
		t.Errorf("sql should group under technical, got %v", grouped)
	}
	if slices.Contains(grouped["analytics"], "sql") {
		t.Errorf("sql must not also appear under analytics, got %v", grouped)
	}
	if !slices.Contains(grouped["design"], "figma") {
		t.Errorf("figma should group under design, got %v", grouped)
	}
	if !slices.Contains(grouped["agile"], "scrum") {
		t.Errorf("scrum should group under agile, got %v", grouped)
	}
	if _, ok := grouped["leadership"]; ok {
		t.Errorf("empty categories must be omitted, got %v", grouped)
	}
}

func BenchmarkSkillMatcher(b *testing.B) {
	m := NewSkillMatcher(DefaultTaxonomy())
	text := "Senior PM with sql, python, roadmap ownership, a/b testing, figma and jira experience working in an agile team"

	for b.Loop() {
		m.Match(text)
	}
}
