package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hiresight/internal/types"
)

// Compiled once; every rule below is a pure function over posting text.
var (
	reYearsRange  = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:to|-|–)\s*(\d+)?\s*years?`)
	reYearsSimple = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)

	reLevelLead   = regexp.MustCompile(`\blead\b|\bprincipal\b|\bstaff\b`)
	reLevelSenior = regexp.MustCompile(`\bsenior\b|\bsr\.?\b`)
	reLevelEntry  = regexp.MustCompile(`\bentry\b|\bjunior\b|\bassociate\b`)

	reSalaryInText = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:k|K)?)\s*(?:to|-|–)\s*\$?(\d{1,3}(?:,\d{3})*(?:k|K)?)`)
	reSalaryToken  = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*(?:k|K)?)`)

	reRemoteFull   = regexp.MustCompile(`fully remote|100%\s*remote|remote[- ]first`)
	reRemoteHybrid = regexp.MustCompile(`hybrid`)
	reRemoteOnSite = regexp.MustCompile(`on[- ]?site|in[- ]office`)
	reRemoteAny    = regexp.MustCompile(`remote`)

	reStageStartup    = regexp.MustCompile(`startup|early[- ]stage`)
	reStageSeries     = regexp.MustCompile(`series ([a-d])`)
	reStageEnterprise = regexp.MustCompile(`enterprise|fortune`)
	reCompanySize     = regexp.MustCompile(`(\d+)\+?\s*(?:person|people|employee)`)

	educationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`bachelor'?s?\s+degree`),
		regexp.MustCompile(`master'?s?\s+degree`),
		regexp.MustCompile(`mba`),
		regexp.MustCompile(`ph\.?d\.?`),
		regexp.MustCompile(`computer science degree`),
		regexp.MustCompile(`technical degree`),
		regexp.MustCompile(`engineering degree`),
	}
)

// ExtractExperienceLevel determines the seniority label. Explicit title
// keywords win over years, and years thresholds apply in descending order.
func ExtractExperienceLevel(text string) string {
	lower := strings.ToLower(text)

	if reLevelLead.MatchString(lower) {
		return types.LevelLead
	}
	if reLevelSenior.MatchString(lower) {
		return types.LevelSenior
	}
	if reLevelEntry.MatchString(lower) {
		return types.LevelEntry
	}

	if years := ExtractYearsExperience(text); years != nil {
		switch {
		case *years >= 10:
			return types.LevelLead
		case *years >= 6:
			return types.LevelSenior
		case *years >= 3:
			return types.LevelMid
		default:
			return types.LevelEntry
		}
	}

	return types.LevelMid
}

// ExtractYearsExperience returns the first years-of-experience figure in
// the text, range form first, or nil when none is stated.
func ExtractYearsExperience(text string) *int {
	for _, re := range []*regexp.Regexp{reYearsRange, reYearsSimple} {
		if m := re.FindStringSubmatch(text); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				return &years
			}
		}
	}
	return nil
}

// ExtractSalaryInfo parses the explicit salary range when given, otherwise
// hunts for one in the text. A range with two parseable amounts yields
// min/max/average; anything else surfaces as raw range text only. Absence
// of salary data is not an error.
func ExtractSalaryInfo(salaryRange, text string) types.SalaryInfo {
	if salaryRange == "" {
		if m := reSalaryInText.FindStringSubmatch(text); m != nil {
			salaryRange = fmt.Sprintf("$%s - $%s", m[1], m[2])
		}
	}
	if salaryRange == "" {
		return types.SalaryInfo{}
	}

	matches := reSalaryToken.FindAllStringSubmatch(salaryRange, -1)
	var amounts []string
	for _, m := range matches {
		if m[1] != "" {
			amounts = append(amounts, m[1])
		}
	}

	if len(amounts) >= 2 {
		minSal, errMin := parseSalaryAmount(amounts[0])
		maxSal, errMax := parseSalaryAmount(amounts[1])
		if errMin == nil && errMax == nil {
			return types.SalaryInfo{
				Min:     minSal,
				Max:     maxSal,
				Average: (minSal + maxSal) / 2,
				Range:   salaryRange,
				Parsed:  true,
			}
		}
	}

	return types.SalaryInfo{Range: salaryRange}
}

// parseSalaryAmount converts one salary token to dollars. A trailing k or
// K multiplies by 1000.
func parseSalaryAmount(s string) (int, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	multiplier := 1
	if strings.HasSuffix(s, "k") || strings.HasSuffix(s, "K") {
		multiplier = 1000
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n * multiplier, nil
}

// ExtractRemotePolicy classifies the working arrangement. Specific
// phrasings outrank the bare word "remote".
func ExtractRemotePolicy(text string) string {
	lower := strings.ToLower(text)

	switch {
	case reRemoteFull.MatchString(lower):
		return types.RemoteFully
	case reRemoteHybrid.MatchString(lower):
		return types.RemoteHybrid
	case reRemoteOnSite.MatchString(lower):
		return types.RemoteOnSite
	case reRemoteAny.MatchString(lower):
		return types.RemoteAvailable
	}
	return types.RemoteNotSpecified
}

// ExtractCompanyTraits pulls stage and size hints from the text.
func ExtractCompanyTraits(text string) types.CompanyTraits {
	lower := strings.ToLower(text)
	var traits types.CompanyTraits

	switch {
	case reStageStartup.MatchString(lower):
		traits.Stage = "Startup"
	case reStageSeries.MatchString(lower):
		m := reStageSeries.FindStringSubmatch(lower)
		traits.Stage = "Series " + strings.ToUpper(m[1])
	case reStageEnterprise.MatchString(lower):
		traits.Stage = "Enterprise"
	}

	if m := reCompanySize.FindStringSubmatch(lower); m != nil {
		traits.Size = m[1] + "+ employees"
	}

	return traits
}

// ExtractEducation collects the education requirements mentioned in the
// text, as matched literal phrases.
func ExtractEducation(text string) []string {
	lower := strings.ToLower(text)
	var education []string
	for _, re := range educationPatterns {
		if m := re.FindString(lower); m != "" {
			education = append(education, m)
		}
	}
	return education
}
