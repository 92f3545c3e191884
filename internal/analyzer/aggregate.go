package analyzer

import (
	"sort"

	"hiresight/internal/types"
)

// Frequency table caps across a batch.
const (
	maxCommonSkills         = 50
	maxCommonResponsibility = 30
	maxCommonQualification  = 30
	maxTopSkills            = 10
)

// Aggregate folds per-document insights into batch-level statistics.
func Aggregate(insights []*types.PerDocumentInsight) *types.AggregatedAnalysis {
	var allSkills, allResponsibilities, allQualifications []string
	var parsedSalaries []types.SalaryInfo

	for _, insight := range insights {
		allSkills = append(allSkills, insight.Skills...)
		allResponsibilities = append(allResponsibilities, insight.Responsibilities...)
		allQualifications = append(allQualifications, insight.Qualifications...)
		if insight.Salary.Parsed {
			parsedSalaries = append(parsedSalaries, insight.Salary)
		}
	}

	return &types.AggregatedAnalysis{
		TotalAnalyzed:          len(insights),
		CommonSkills:           frequencyTable(allSkills, maxCommonSkills),
		CommonResponsibilities: frequencyTable(allResponsibilities, maxCommonResponsibility),
		CommonQualifications:   frequencyTable(allQualifications, maxCommonQualification),
		Insights:               insights,
		SalarySummary:          summarizeSalaries(parsedSalaries),
		MarketComparison:       compareMarket(insights, allSkills),
	}
}

// frequencyTable counts values and orders them by count descending; equal
// counts keep first-appearance order, so output is deterministic for a
// given input sequence.
func frequencyTable(values []string, limit int) []types.FrequencyEntry {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}

	entries := make([]types.FrequencyEntry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, types.FrequencyEntry{Value: v, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// summarizeSalaries aggregates fully parsed salary ranges. No parsed
// salaries means no summary, not a zero one.
func summarizeSalaries(salaries []types.SalaryInfo) *types.SalarySummary {
	if len(salaries) == 0 {
		return nil
	}

	marketMin, marketMax := salaries[0].Min, salaries[0].Max
	sumMin, sumMax := 0, 0
	for _, s := range salaries {
		if s.Min < marketMin {
			marketMin = s.Min
		}
		if s.Max > marketMax {
			marketMax = s.Max
		}
		sumMin += s.Min
		sumMax += s.Max
	}

	return &types.SalarySummary{
		MarketMin:  marketMin,
		MarketMax:  marketMax,
		AverageMin: sumMin / len(salaries),
		AverageMax: sumMax / len(salaries),
		SampleSize: len(salaries),
	}
}

// compareMarket builds histograms and cross-posting requirement patterns.
func compareMarket(insights []*types.PerDocumentInsight, allSkills []string) types.MarketComparison {
	levels := make(map[string]int)
	policies := make(map[string]int)
	var yearsSum, yearsCount int
	educationCount := 0

	for _, insight := range insights {
		levels[insight.ExperienceLevel]++
		policies[insight.RemotePolicy]++
		if insight.ExperienceYears != nil {
			yearsSum += *insight.ExperienceYears
			yearsCount++
		}
		if len(insight.Education) > 0 {
			educationCount++
		}
	}

	topEntries := frequencyTable(allSkills, maxTopSkills)
	topSkills := make([]string, 0, len(topEntries))
	for _, e := range topEntries {
		topSkills = append(topSkills, e.Value)
	}

	req := types.CommonRequirements{
		TopSkills:             topSkills,
		EducationReqFrequency: float64(educationCount) / float64(len(insights)),
	}
	if yearsCount > 0 {
		req.AverageYearsRequired = float64(yearsSum) / float64(yearsCount)
	}

	return types.MarketComparison{
		TotalRolesAnalyzed: len(insights),
		ExperienceLevels:   levels,
		RemotePolicies:     policies,
		CommonRequirements: req,
	}
}
