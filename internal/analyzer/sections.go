package analyzer

import (
	"regexp"
	"strings"
)

const maxItemLength = 200

var (
	reBulletLead   = regexp.MustCompile(`^[-•*\d.]`)
	reBulletItem   = regexp.MustCompile(`^[-•*]\s+`)
	reNumberedItem = regexp.MustCompile(`^\d+\.\s+`)
	reBulletMarker = regexp.MustCompile(`^[-•*\d.]+\s+`)
)

// Section heading keywords recognized by the scanner.
var (
	ResponsibilityKeywords = []string{"responsibilities", "duties", "what you"}
	QualificationKeywords  = []string{"qualifications", "requirements", "you have"}
	NiceToHaveKeywords     = []string{"nice to have", "preferred", "bonus", "plus", "ideal candidate"}
)

// ExtractSections scans the text line by line with two states. A line
// containing one of the keywords opens capture; bullet lines are collected
// with their marker stripped and truncated to 200 characters; a non-bullet
// line followed by another non-bullet line closes capture. Running out of
// text closes capture implicitly. Items at or under minLen characters are
// dropped and at most maxItems are returned.
func ExtractSections(text string, keywords []string, minLen, maxItems int) []string {
	var items []string
	lines := strings.Split(text, "\n")

	inSection := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if containsAnyFold(line, keywords) {
			inSection = true
			continue
		}

		if inSection && line != "" && !reBulletLead.MatchString(line) {
			if i == len(lines)-1 || !reBulletLead.MatchString(strings.TrimSpace(lines[i+1])) {
				inSection = false
			}
		}

		if inSection && (reBulletItem.MatchString(line) || reNumberedItem.MatchString(line)) {
			clean := reBulletMarker.ReplaceAllString(line, "")
			if len(clean) > minLen {
				if len(clean) > maxItemLength {
					clean = clean[:maxItemLength]
				}
				items = append(items, clean)
			}
		}
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}

func containsAnyFold(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
