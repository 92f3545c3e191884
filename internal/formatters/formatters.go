package formatters

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"hiresight/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "PerDocumentInsight", &InsightTextFormatter{})
	registry.RegisterFormatter("markdown", "PerDocumentInsight", &InsightMarkdownFormatter{})
	registry.RegisterFormatter("text", "AggregatedAnalysis", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AggregatedAnalysis", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "HiringPackage", &PackageTextFormatter{})
	registry.RegisterFormatter("markdown", "HiringPackage", &PackageMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case *types.PerDocumentInsight:
		return "PerDocumentInsight"
	case *types.AggregatedAnalysis:
		return "AggregatedAnalysis"
	case *types.HiringPackage:
		return "HiringPackage"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// InsightTextFormatter handles text formatting for single-posting insights
type InsightTextFormatter struct{}

func (itf *InsightTextFormatter) Format(data any) (string, error) {
	insight, ok := data.(*types.PerDocumentInsight)
	if !ok {
		return "", fmt.Errorf("expected *PerDocumentInsight, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB POSTING INSIGHT ===\n\n")
	output.WriteString(fmt.Sprintf("%s at %s\n", insight.Title, insight.Company))
	output.WriteString(fmt.Sprintf("Experience level: %s\n", insight.ExperienceLevel))
	if insight.ExperienceYears != nil {
		output.WriteString(fmt.Sprintf("Years required: %d\n", *insight.ExperienceYears))
	}
	output.WriteString(fmt.Sprintf("Location: %s\n", insight.Location))
	output.WriteString(fmt.Sprintf("Remote policy: %s\n", insight.RemotePolicy))
	if !insight.Salary.Empty() {
		if insight.Salary.Parsed {
			output.WriteString(fmt.Sprintf("Salary: $%d - $%d (average $%d)\n", insight.Salary.Min, insight.Salary.Max, insight.Salary.Average))
		} else {
			output.WriteString(fmt.Sprintf("Salary: %s\n", insight.Salary.Range))
		}
	}
	output.WriteString("\n")

	if len(insight.Skills) > 0 {
		output.WriteString("Skills:\n")
		for _, s := range insight.Skills {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(insight.Responsibilities) > 0 {
		output.WriteString("Responsibilities:\n")
		for _, r := range insight.Responsibilities {
			output.WriteString(fmt.Sprintf("- %s\n", r))
		}
		output.WriteString("\n")
	}
	if len(insight.Qualifications) > 0 {
		output.WriteString("Qualifications:\n")
		for _, q := range insight.Qualifications {
			output.WriteString(fmt.Sprintf("- %s\n", q))
		}
		output.WriteString("\n")
	}
	if len(insight.NiceToHave) > 0 {
		output.WriteString("Nice to have:\n")
		for _, n := range insight.NiceToHave {
			output.WriteString(fmt.Sprintf("- %s\n", n))
		}
		output.WriteString("\n")
	}
	if len(insight.Education) > 0 {
		output.WriteString(fmt.Sprintf("Education: %s\n", strings.Join(insight.Education, ", ")))
	}

	return output.String(), nil
}

func (itf *InsightTextFormatter) SupportedType() string {
	return "PerDocumentInsight"
}

// InsightMarkdownFormatter handles markdown formatting for single-posting insights
type InsightMarkdownFormatter struct{}

func (imf *InsightMarkdownFormatter) Format(data any) (string, error) {
	insight, ok := data.(*types.PerDocumentInsight)
	if !ok {
		return "", fmt.Errorf("expected *PerDocumentInsight, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s at %s\n\n", insight.Title, insight.Company))
	output.WriteString(fmt.Sprintf("- **Experience level:** %s\n", insight.ExperienceLevel))
	if insight.ExperienceYears != nil {
		output.WriteString(fmt.Sprintf("- **Years required:** %d\n", *insight.ExperienceYears))
	}
	output.WriteString(fmt.Sprintf("- **Location:** %s\n", insight.Location))
	output.WriteString(fmt.Sprintf("- **Remote policy:** %s\n", insight.RemotePolicy))
	if !insight.Salary.Empty() {
		if insight.Salary.Parsed {
			output.WriteString(fmt.Sprintf("- **Salary:** $%d - $%d (average $%d)\n", insight.Salary.Min, insight.Salary.Max, insight.Salary.Average))
		} else {
			output.WriteString(fmt.Sprintf("- **Salary:** %s\n", insight.Salary.Range))
		}
	}
	output.WriteString("\n")

	writeListMarkdown(&output, "Skills", insight.Skills)
	writeListMarkdown(&output, "Responsibilities", insight.Responsibilities)
	writeListMarkdown(&output, "Qualifications", insight.Qualifications)
	writeListMarkdown(&output, "Nice to Have", insight.NiceToHave)
	if len(insight.Education) > 0 {
		output.WriteString(fmt.Sprintf("**Education:** %s\n", strings.Join(insight.Education, ", ")))
	}

	return output.String(), nil
}

func (imf *InsightMarkdownFormatter) SupportedType() string {
	return "PerDocumentInsight"
}

func writeListMarkdown(output *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString("## " + heading + "\n\n")
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

// AnalysisTextFormatter handles text formatting for aggregated batch analyses
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.AggregatedAnalysis)
	if !ok {
		return "", fmt.Errorf("expected *AggregatedAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB MARKET ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Postings analyzed: %d\n\n", result.TotalAnalyzed))

	if len(result.CommonSkills) > 0 {
		output.WriteString("=== COMMON SKILLS ===\n")
		for _, entry := range result.CommonSkills {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Value, entry.Count))
		}
		output.WriteString("\n")
	}

	if len(result.CommonResponsibilities) > 0 {
		output.WriteString("=== COMMON RESPONSIBILITIES ===\n")
		for _, entry := range result.CommonResponsibilities {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Value, entry.Count))
		}
		output.WriteString("\n")
	}

	if len(result.CommonQualifications) > 0 {
		output.WriteString("=== COMMON QUALIFICATIONS ===\n")
		for _, entry := range result.CommonQualifications {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Value, entry.Count))
		}
		output.WriteString("\n")
	}

	if result.SalarySummary != nil {
		output.WriteString("=== SALARY INSIGHTS ===\n")
		output.WriteString(fmt.Sprintf("Market range: $%d - $%d\n", result.SalarySummary.MarketMin, result.SalarySummary.MarketMax))
		output.WriteString(fmt.Sprintf("Average range: $%d - $%d\n", result.SalarySummary.AverageMin, result.SalarySummary.AverageMax))
		output.WriteString(fmt.Sprintf("Sample size: %d\n\n", result.SalarySummary.SampleSize))
	}

	output.WriteString("=== MARKET COMPARISON ===\n")
	writeDistributionText(&output, "Experience levels", result.MarketComparison.ExperienceLevels)
	writeDistributionText(&output, "Remote policies", result.MarketComparison.RemotePolicies)
	reqs := result.MarketComparison.CommonRequirements
	if len(reqs.TopSkills) > 0 {
		output.WriteString(fmt.Sprintf("Top skills: %s\n", strings.Join(reqs.TopSkills, ", ")))
	}
	if reqs.AverageYearsRequired > 0 {
		output.WriteString(fmt.Sprintf("Average years required: %.1f\n", reqs.AverageYearsRequired))
	}
	output.WriteString(fmt.Sprintf("Education requirement frequency: %.0f%%\n", reqs.EducationReqFrequency))

	if len(result.Insights) > 0 {
		output.WriteString("\n=== PER-POSTING INSIGHTS ===\n\n")
		for i, insight := range result.Insights {
			output.WriteString(fmt.Sprintf("%d. %s at %s\n", i+1, insight.Title, insight.Company))
			output.WriteString(fmt.Sprintf("   Level: %s\n", insight.ExperienceLevel))
			output.WriteString(fmt.Sprintf("   Remote policy: %s\n", insight.RemotePolicy))
			if !insight.Salary.Empty() {
				if insight.Salary.Parsed {
					output.WriteString(fmt.Sprintf("   Salary: $%d - $%d\n", insight.Salary.Min, insight.Salary.Max))
				} else {
					output.WriteString(fmt.Sprintf("   Salary: %s\n", insight.Salary.Range))
				}
			}
			if len(insight.Skills) > 0 {
				output.WriteString(fmt.Sprintf("   Skills: %s\n", strings.Join(insight.Skills, ", ")))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AggregatedAnalysis"
}

func writeDistributionText(output *strings.Builder, label string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	output.WriteString(label + ":\n")
	for _, key := range sortedDistributionKeys(dist) {
		output.WriteString(fmt.Sprintf("- %s: %d\n", key, dist[key]))
	}
}

func sortedDistributionKeys(dist map[string]int) []string {
	return slices.Sorted(maps.Keys(dist))
}

// AnalysisMarkdownFormatter handles markdown formatting for aggregated batch analyses
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.AggregatedAnalysis)
	if !ok {
		return "", fmt.Errorf("expected *AggregatedAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Market Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Postings analyzed:** %d\n\n", result.TotalAnalyzed))

	if len(result.CommonSkills) > 0 {
		output.WriteString("## Common Skills\n\n")
		output.WriteString("| Skill | Count |\n|---|---|\n")
		for _, entry := range result.CommonSkills {
			output.WriteString(fmt.Sprintf("| %s | %d |\n", entry.Value, entry.Count))
		}
		output.WriteString("\n")
	}

	if len(result.CommonResponsibilities) > 0 {
		output.WriteString("## Common Responsibilities\n\n")
		for _, entry := range result.CommonResponsibilities {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Value, entry.Count))
		}
		output.WriteString("\n")
	}

	if len(result.CommonQualifications) > 0 {
		output.WriteString("## Common Qualifications\n\n")
		for _, entry := range result.CommonQualifications {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Value, entry.Count))
		}
		output.WriteString("\n")
	}

	if result.SalarySummary != nil {
		output.WriteString("## Salary Insights\n\n")
		output.WriteString(fmt.Sprintf("- **Market range:** $%d - $%d\n", result.SalarySummary.MarketMin, result.SalarySummary.MarketMax))
		output.WriteString(fmt.Sprintf("- **Average range:** $%d - $%d\n", result.SalarySummary.AverageMin, result.SalarySummary.AverageMax))
		output.WriteString(fmt.Sprintf("- **Sample size:** %d\n\n", result.SalarySummary.SampleSize))
	}

	output.WriteString("## Market Comparison\n\n")
	writeDistributionMarkdown(&output, "Experience Levels", result.MarketComparison.ExperienceLevels)
	writeDistributionMarkdown(&output, "Remote Policies", result.MarketComparison.RemotePolicies)
	reqs := result.MarketComparison.CommonRequirements
	if len(reqs.TopSkills) > 0 {
		output.WriteString(fmt.Sprintf("**Top skills:** %s\n\n", strings.Join(reqs.TopSkills, ", ")))
	}
	if reqs.AverageYearsRequired > 0 {
		output.WriteString(fmt.Sprintf("**Average years required:** %.1f\n\n", reqs.AverageYearsRequired))
	}
	output.WriteString(fmt.Sprintf("**Education requirement frequency:** %.0f%%\n", reqs.EducationReqFrequency))

	if len(result.Insights) > 0 {
		output.WriteString("\n## Per-Posting Insights\n\n")
		for i, insight := range result.Insights {
			output.WriteString(fmt.Sprintf("### %d. %s at %s\n\n", i+1, insight.Title, insight.Company))
			output.WriteString(fmt.Sprintf("- **Level:** %s\n", insight.ExperienceLevel))
			output.WriteString(fmt.Sprintf("- **Remote policy:** %s\n", insight.RemotePolicy))
			if !insight.Salary.Empty() {
				if insight.Salary.Parsed {
					output.WriteString(fmt.Sprintf("- **Salary:** $%d - $%d\n", insight.Salary.Min, insight.Salary.Max))
				} else {
					output.WriteString(fmt.Sprintf("- **Salary:** %s\n", insight.Salary.Range))
				}
			}
			if len(insight.Skills) > 0 {
				output.WriteString(fmt.Sprintf("- **Skills:** %s\n", strings.Join(insight.Skills, ", ")))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AggregatedAnalysis"
}

func writeDistributionMarkdown(output *strings.Builder, heading string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	output.WriteString("### " + heading + "\n\n")
	for _, key := range sortedDistributionKeys(dist) {
		output.WriteString(fmt.Sprintf("- %s: %d\n", key, dist[key]))
	}
	output.WriteString("\n")
}

// PackageTextFormatter handles text formatting for generated hiring packages
type PackageTextFormatter struct{}

func (ptf *PackageTextFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.HiringPackage)
	if !ok {
		return "", fmt.Errorf("expected *HiringPackage, got %T", data)
	}

	var output strings.Builder

	if jd := result.JobDescription; jd != nil {
		output.WriteString("=== JOB DESCRIPTION ===\n\n")
		output.WriteString(fmt.Sprintf("%s\n%s | %s | %s\n\n", jd.Header.Title, jd.Header.Company, jd.Header.Location, jd.Header.Type))
		output.WriteString(jd.Overview)
		output.WriteString("\n\nResponsibilities:\n")
		for _, r := range jd.Responsibilities {
			output.WriteString(fmt.Sprintf("- %s\n", r))
		}
		output.WriteString("\nRequired Qualifications:\n")
		for _, q := range jd.Qualifications.Required {
			output.WriteString(fmt.Sprintf("- %s\n", q))
		}
		if len(jd.Qualifications.Preferred) > 0 {
			output.WriteString("\nPreferred Qualifications:\n")
			for _, q := range jd.Qualifications.Preferred {
				output.WriteString(fmt.Sprintf("- %s\n", q))
			}
		}
		output.WriteString(fmt.Sprintf("\nCompensation: %s\n", jd.Compensation.SalaryRange))
		output.WriteString("\nBenefits:\n")
		for _, b := range jd.Benefits {
			output.WriteString(fmt.Sprintf("- %s\n", b))
		}
		output.WriteString("\nHow to Apply:\n")
		output.WriteString(jd.HowToApply)
		output.WriteString("\n\n")
	}

	if plan := result.HiringPlan; plan != nil {
		output.WriteString("=== HIRING PLAN ===\n\n")
		output.WriteString(plan.Overview)
		output.WriteString("\n\nKey Priorities:\n")
		for _, p := range plan.KeyPriorities {
			output.WriteString(fmt.Sprintf("- %s\n", p))
		}
		output.WriteString("\nSourcing Channels:\n")
		for _, c := range plan.SourcingChannels {
			output.WriteString(fmt.Sprintf("- %s (%s priority, %s of pipeline)\n", c.Name, c.Priority, c.Share))
		}
		output.WriteString(fmt.Sprintf("\nTimeline: %d weeks\n", plan.TimelineWeeks))
		output.WriteString("\nRisks:\n")
		for _, r := range plan.Risks {
			output.WriteString(fmt.Sprintf("- %s (impact: %s)\n  Mitigation: %s\n", r.Risk, r.Impact, r.Mitigation))
		}
		output.WriteString("\n")
	}

	if rubric := result.Rubric; rubric != nil {
		output.WriteString("=== INTERVIEW RUBRIC ===\n\n")
		output.WriteString(fmt.Sprintf("Total interview time: %s\n\n", rubric.TotalTime))
		for _, stage := range rubric.Stages {
			output.WriteString(fmt.Sprintf("Stage %d: %s\n", stage.Number, stage.Name))
			output.WriteString(fmt.Sprintf("  Duration: %s | Interviewer: %s | Format: %s\n", stage.Duration, stage.Interviewer, stage.Format))
			for _, obj := range stage.Objectives {
				output.WriteString(fmt.Sprintf("  - %s\n", obj))
			}
			output.WriteString("\n")
		}
		output.WriteString("Scoring Guide:\n")
		for _, level := range rubric.ScoringGuide {
			output.WriteString(fmt.Sprintf("- %d (%s): %s\n", level.Score, level.Label, level.Description))
		}
		output.WriteString(fmt.Sprintf("\nDecision rule: %s\n\n", rubric.DecisionRule))
	}

	if timeline := result.Timeline; timeline != nil {
		output.WriteString("=== HIRING TIMELINE ===\n\n")
		output.WriteString(fmt.Sprintf("Start: %s | Target hire date: %s | Duration: %d weeks\n\n",
			timeline.StartDate, timeline.TargetHireDate, timeline.DurationWeeks))
		for _, phase := range timeline.Phases {
			output.WriteString(fmt.Sprintf("Phase %d: %s (%s to %s)\n", phase.Number, phase.Name, phase.StartDate, phase.EndDate))
			for _, d := range phase.Deliverables {
				output.WriteString(fmt.Sprintf("  - %s\n", d))
			}
		}
		output.WriteString("\nMilestones:\n")
		for _, m := range timeline.Milestones {
			output.WriteString(fmt.Sprintf("- %s: %s\n", m.Date, m.Name))
		}
	}

	return output.String(), nil
}

func (ptf *PackageTextFormatter) SupportedType() string {
	return "HiringPackage"
}

// PackageMarkdownFormatter handles markdown formatting for generated hiring packages
type PackageMarkdownFormatter struct{}

func (pmf *PackageMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.HiringPackage)
	if !ok {
		return "", fmt.Errorf("expected *HiringPackage, got %T", data)
	}

	var output strings.Builder

	if jd := result.JobDescription; jd != nil {
		output.WriteString(fmt.Sprintf("# %s\n\n", jd.Header.Title))
		output.WriteString(fmt.Sprintf("**%s** | %s | %s\n\n", jd.Header.Company, jd.Header.Location, jd.Header.Type))
		output.WriteString(jd.Overview)
		output.WriteString("\n\n## Responsibilities\n\n")
		for _, r := range jd.Responsibilities {
			output.WriteString(fmt.Sprintf("- %s\n", r))
		}
		output.WriteString("\n## Qualifications\n\n### Required\n\n")
		for _, q := range jd.Qualifications.Required {
			output.WriteString(fmt.Sprintf("- %s\n", q))
		}
		if len(jd.Qualifications.Preferred) > 0 {
			output.WriteString("\n### Preferred\n\n")
			for _, q := range jd.Qualifications.Preferred {
				output.WriteString(fmt.Sprintf("- %s\n", q))
			}
		}
		output.WriteString(fmt.Sprintf("\n## Compensation\n\n%s\n", jd.Compensation.SalaryRange))
		output.WriteString("\n## Benefits\n\n")
		for _, b := range jd.Benefits {
			output.WriteString(fmt.Sprintf("- %s\n", b))
		}
		output.WriteString("\n## How to Apply\n\n")
		output.WriteString(jd.HowToApply)
		output.WriteString("\n\n")
	}

	if plan := result.HiringPlan; plan != nil {
		output.WriteString("# Hiring Plan\n\n")
		output.WriteString(plan.Overview)
		output.WriteString("\n\n## Key Priorities\n\n")
		for _, p := range plan.KeyPriorities {
			output.WriteString(fmt.Sprintf("- %s\n", p))
		}
		output.WriteString("\n## Sourcing Channels\n\n")
		output.WriteString("| Channel | Priority | Share |\n|---|---|---|\n")
		for _, c := range plan.SourcingChannels {
			output.WriteString(fmt.Sprintf("| %s | %s | %s |\n", c.Name, c.Priority, c.Share))
		}
		output.WriteString(fmt.Sprintf("\n**Timeline:** %d weeks\n", plan.TimelineWeeks))
		output.WriteString("\n## Risks and Mitigations\n\n")
		for _, r := range plan.Risks {
			output.WriteString(fmt.Sprintf("- **%s** (impact: %s)\n  - Mitigation: %s\n", r.Risk, r.Impact, r.Mitigation))
		}
		output.WriteString("\n")
	}

	if rubric := result.Rubric; rubric != nil {
		output.WriteString("# Interview Rubric\n\n")
		output.WriteString(fmt.Sprintf("**Total interview time:** %s\n\n", rubric.TotalTime))
		for _, stage := range rubric.Stages {
			output.WriteString(fmt.Sprintf("## Stage %d: %s\n\n", stage.Number, stage.Name))
			output.WriteString(fmt.Sprintf("**Duration:** %s | **Interviewer:** %s | **Format:** %s\n\n", stage.Duration, stage.Interviewer, stage.Format))
			if len(stage.Objectives) > 0 {
				output.WriteString("### Objectives\n\n")
				for _, obj := range stage.Objectives {
					output.WriteString(fmt.Sprintf("- %s\n", obj))
				}
				output.WriteString("\n")
			}
			if len(stage.KeyQuestions) > 0 {
				output.WriteString("### Key Questions\n\n")
				for _, q := range stage.KeyQuestions {
					output.WriteString(fmt.Sprintf("- %s\n", q))
				}
				output.WriteString("\n")
			}
		}
		output.WriteString("## Scoring Guide\n\n")
		for _, level := range rubric.ScoringGuide {
			output.WriteString(fmt.Sprintf("- **%d - %s:** %s\n", level.Score, level.Label, level.Description))
		}
		output.WriteString(fmt.Sprintf("\n**Decision rule:** %s\n\n", rubric.DecisionRule))
	}

	if timeline := result.Timeline; timeline != nil {
		output.WriteString("# Hiring Timeline\n\n")
		output.WriteString(fmt.Sprintf("**Start:** %s | **Target hire date:** %s | **Duration:** %d weeks\n\n",
			timeline.StartDate, timeline.TargetHireDate, timeline.DurationWeeks))
		for _, phase := range timeline.Phases {
			output.WriteString(fmt.Sprintf("## Phase %d: %s\n\n", phase.Number, phase.Name))
			output.WriteString(fmt.Sprintf("%s to %s (%d weeks)\n\n", phase.StartDate, phase.EndDate, phase.DurationWeeks))
			for _, d := range phase.Deliverables {
				output.WriteString(fmt.Sprintf("- %s\n", d))
			}
			output.WriteString("\n")
		}
		output.WriteString("## Milestones\n\n")
		output.WriteString("| Date | Milestone |\n|---|---|\n")
		for _, m := range timeline.Milestones {
			output.WriteString(fmt.Sprintf("| %s | %s |\n", m.Date, m.Name))
		}
	}

	return output.String(), nil
}

func (pmf *PackageMarkdownFormatter) SupportedType() string {
	return "HiringPackage"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
