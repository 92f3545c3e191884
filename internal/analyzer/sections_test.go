package analyzer

import (
	"strings"
	"testing"
)

func TestExtractSections(t *testing.T) {
	text := strings.Join([]string{
		"About the role",
		"",
		"Responsibilities:",
		"- Own the product roadmap and prioritize features",
		"- Work with engineering and design teams daily",
		"* Define metrics that capture product success",
		"1. Present strategy updates to leadership teams",
		"- short",
		"",
		"Benefits are great here",
		"We offer many perks to employees",
		"- This bullet is outside the section scan",
	}, "\n")

	got := ExtractSections(text, ResponsibilityKeywords, 20, 20)
	want := []string{
		"Own the product roadmap and prioritize features",
		"Work with engineering and design teams daily",
		"Define metrics that capture product success",
		"Present strategy updates to leadership teams",
	}

	if len(got) != len(want) {
		t.Fatalf("ExtractSections() returned %d items, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractSectionsEndsAtEOF(t *testing.T) {
	text := strings.Join([]string{
		"Requirements:",
		"- Five years of product management experience",
		"- Strong written and verbal communication skills",
	}, "\n")

	got := ExtractSections(text, QualificationKeywords, 20, 20)
	if len(got) != 2 {
		t.Fatalf("ExtractSections() returned %d items, want 2: %v", len(got), got)
	}
}

func TestExtractSectionsSingleNonBulletDoesNotExit(t *testing.T) {
	text := strings.Join([]string{
		"What you will do:",
		"- Drive quarterly planning with stakeholder teams",
		"Including these additional items below",
		"- Coordinate launches across marketing and sales",
	}, "\n")

	got := ExtractSections(text, ResponsibilityKeywords, 20, 20)
	if len(got) != 2 {
		t.Fatalf("ExtractSections() returned %d items, want 2: %v", len(got), got)
	}
}

func TestExtractSectionsTruncatesLongItems(t *testing.T) {
	long := strings.Repeat("x", 300)
	text := "Responsibilities:\n- " + long

	got := ExtractSections(text, ResponsibilityKeywords, 20, 20)
	if len(got) != 1 {
		t.Fatalf("ExtractSections() returned %d items, want 1", len(got))
	}
	if len(got[0]) != maxItemLength {
		t.Errorf("item length = %d, want %d", len(got[0]), maxItemLength)
	}
}

func TestExtractSectionsCapsItemCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("Nice to have:\n")
	for range 15 {
		b.WriteString("- a preferred qualification item\n")
	}

	got := ExtractSections(b.String(), NiceToHaveKeywords, 10, 10)
	if len(got) != 10 {
		t.Errorf("ExtractSections() returned %d items, want 10", len(got))
	}
}

func TestExtractSectionsNoKeyword(t *testing.T) {
	text := "Some introduction\n- a bullet without any opening heading nearby"
	if got := ExtractSections(text, ResponsibilityKeywords, 20, 20); len(got) != 0 {
		t.Errorf("ExtractSections() = %v, want empty", got)
	}
}
