package formatters

import (
	"strings"
	"testing"

	"hiresight/internal/types"
)

func sampleAnalysis() *types.AggregatedAnalysis {
	return &types.AggregatedAnalysis{
		TotalAnalyzed: 3,
		CommonSkills: []types.FrequencyEntry{
			{Value: "sql", Count: 3},
			{Value: "roadmap", Count: 2},
		},
		SalarySummary: &types.SalarySummary{
			MarketMin: 120000, MarketMax: 180000,
			AverageMin: 130000, AverageMax: 170000,
			SampleSize: 2,
		},
		MarketComparison: types.MarketComparison{
			TotalRolesAnalyzed: 3,
			ExperienceLevels:   map[string]int{types.LevelSenior: 2, types.LevelMid: 1},
			RemotePolicies:     map[string]int{types.RemoteHybrid: 3},
			CommonRequirements: types.CommonRequirements{
				TopSkills:             []string{"sql", "roadmap"},
				EducationReqFrequency: 66.7,
			},
		},
		Insights: []*types.PerDocumentInsight{
			{Title: "Senior PM", Company: "Acme", ExperienceLevel: types.LevelSenior,
				RemotePolicy: types.RemoteHybrid, Skills: []string{"sql"}},
		},
	}
}

func TestRegistryFormatsAnalysis(t *testing.T) {
	registry := NewFormatterRegistry()
	analysis := sampleAnalysis()

	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"=== JOB MARKET ANALYSIS ===", "sql (3)", "Market range: $120000 - $180000", "Senior PM at Acme"}},
		{"markdown", []string{"# Job Market Analysis", "| sql | 3 |", "**Sample size:** 2", "### 1. Senior PM at Acme"}},
		{"json", []string{`"total_analyzed": 3`, `"market_min": 120000`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := registry.Format(analysis, tt.format)
			if err != nil {
				t.Fatalf("Format(%s) error: %v", tt.format, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Format(%s) missing %q", tt.format, want)
				}
			}
		})
	}
}

func TestRegistryFormatsHiringPackage(t *testing.T) {
	registry := NewFormatterRegistry()
	pkg := &types.HiringPackage{
		JobDescription: &types.GeneratedJobDescription{
			Header:           types.JobHeader{Title: "Senior Product Manager", Company: "Acme", Location: "Remote", Type: "Full-Time"},
			Overview:         "Acme builds things.",
			Responsibilities: []string{"Own the roadmap"},
			Qualifications:   types.Qualifications{Required: []string{"5+ years of product management experience"}},
			Compensation:     types.Compensation{SalaryRange: "$160k - $200k"},
			Benefits:         []string{"Health insurance"},
			HowToApply:       "Apply online.",
		},
		Rubric: &types.InterviewRubric{
			TotalTime: "5-6 hours",
			Stages: []types.InterviewStage{
				{Name: "Recruiter Screening", Number: 1, Duration: "30 minutes", Interviewer: "Recruiter", Format: "Phone"},
			},
			ScoringGuide: []types.ScoringLevel{{Score: 4, Label: "Strong Hire", Description: "Exceeds expectations"}},
			DecisionRule: "Average of 3.0 or higher to advance.",
		},
	}

	text, err := registry.Format(pkg, "text")
	if err != nil {
		t.Fatalf("Format(text) error: %v", err)
	}
	for _, want := range []string{"=== JOB DESCRIPTION ===", "Senior Product Manager", "=== INTERVIEW RUBRIC ===", "Stage 1: Recruiter Screening"} {
		if !strings.Contains(text, want) {
			t.Errorf("Format(text) missing %q", want)
		}
	}

	md, err := registry.Format(pkg, "markdown")
	if err != nil {
		t.Fatalf("Format(markdown) error: %v", err)
	}
	if !strings.Contains(md, "## Stage 1: Recruiter Screening") {
		t.Errorf("Format(markdown) missing rubric stage heading")
	}
	// hiring plan and timeline blocks are optional
	if strings.Contains(md, "# Hiring Plan") || strings.Contains(md, "# Hiring Timeline") {
		t.Error("Format(markdown) rendered sections for nil documents")
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleAnalysis(), "xml"); err == nil {
		t.Fatal("Format(xml) expected error")
	}
}

func TestRegistryFallsBackToJSONForUnknownType(t *testing.T) {
	registry := NewFormatterRegistry()
	out, err := registry.Format(map[string]string{"k": "v"}, "json")
	if err != nil {
		t.Fatalf("Format(json) error: %v", err)
	}
	if !strings.Contains(out, `"k": "v"`) {
		t.Errorf("Format(json) = %q", out)
	}
}
