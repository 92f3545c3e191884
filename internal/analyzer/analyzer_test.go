package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	apperrors "hiresight/internal/errors"
	"hiresight/internal/types"
)

func testLogger() *apperrors.Logger {
	return apperrors.NewLogger(slog.LevelError)
}

// pad appends filler so descriptions clear the 50-word validation floor.
func pad(text string) string {
	return text + "\n" + strings.Repeat("and the team ships thoughtful product work every single week ", 6)
}

func testPosting(t *testing.T, title, company, salaryRange, description string) *types.JobPosting {
	t.Helper()
	p, err := types.NewJobPosting(title, company, "", salaryRange, pad(description))
	if err != nil {
		t.Fatalf("NewJobPosting() error: %v", err)
	}
	return p
}

func TestAnalyzeOne(t *testing.T) {
	a, err := New(Config{}, nil, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	description := strings.Join([]string{
		"Senior Product Manager with 8+ years of experience.",
		"This is a fully remote role at our series b startup with 120+ employees.",
		"Salary: $140k - $170k. Bachelor's degree required.",
		"",
		"Responsibilities:",
		"- Own the roadmap and drive feature prioritization",
		"- Partner with engineering on sql-backed analytics",
	}, "\n")

	insight, err := a.AnalyzeOne(context.Background(), testPosting(t, "Senior PM", "Acme", "", description))
	if err != nil {
		t.Fatalf("AnalyzeOne() error: %v", err)
	}

	if insight.ExperienceLevel != types.LevelSenior {
		t.Errorf("ExperienceLevel = %q, want %q", insight.ExperienceLevel, types.LevelSenior)
	}
	if insight.ExperienceYears == nil || *insight.ExperienceYears != 8 {
		t.Errorf("ExperienceYears = %v, want 8", insight.ExperienceYears)
	}
	if insight.RemotePolicy != types.RemoteFully {
		t.Errorf("RemotePolicy = %q, want %q", insight.RemotePolicy, types.RemoteFully)
	}
	if !insight.Salary.Parsed || insight.Salary.Min != 140000 || insight.Salary.Max != 170000 {
		t.Errorf("Salary = %+v, want parsed 140000-170000", insight.Salary)
	}
	if insight.CompanyTraits.Size != "120+ employees" {
		t.Errorf("CompanyTraits.Size = %q, want 120+ employees", insight.CompanyTraits.Size)
	}
	if insight.Location != "Not specified" {
		t.Errorf("Location = %q, want Not specified", insight.Location)
	}
	if len(insight.Education) == 0 {
		t.Errorf("Education is empty, want bachelor's degree")
	}
	found := false
	for _, s := range insight.Skills {
		if s == "roadmap" {
			found = true
		}
	}
	if !found {
		t.Errorf("Skills = %v, want roadmap present", insight.Skills)
	}
}

func TestAnalyzeOneIdempotent(t *testing.T) {
	a, err := New(Config{}, nil, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	posting := testPosting(t, "PM", "Acme", "$90k - $120k",
		"Product Manager role with sql, jira and agile experience. Hybrid schedule.")

	first, err := a.AnalyzeOne(context.Background(), posting)
	if err != nil {
		t.Fatalf("AnalyzeOne() error: %v", err)
	}
	second, err := a.AnalyzeOne(context.Background(), posting)
	if err != nil {
		t.Fatalf("AnalyzeOne() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("AnalyzeOne() is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeBatchTooSmall(t *testing.T) {
	a, err := New(Config{}, nil, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	postings := []*types.JobPosting{
		testPosting(t, "PM", "Acme", "", "Product role one with roadmap work."),
		testPosting(t, "PM", "Beta", "", "Product role two with roadmap work."),
	}

	_, err = a.AnalyzeBatch(context.Background(), postings)
	if err == nil {
		t.Fatal("AnalyzeBatch() expected error for undersized batch")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("AnalyzeBatch() error = %T, want *AppError", err)
	}
	if appErr.Type != apperrors.ErrorTypeInsufficientData {
		t.Errorf("error type = %q, want %q", appErr.Type, apperrors.ErrorTypeInsufficientData)
	}
}

func TestAnalyzeBatchConfigurableMinimum(t *testing.T) {
	a, err := New(Config{MinBatchSize: 2}, nil, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	postings := []*types.JobPosting{
		testPosting(t, "PM", "Acme", "", "Product role one with roadmap work."),
		testPosting(t, "PM", "Beta", "", "Product role two with roadmap work."),
	}

	result, err := a.AnalyzeBatch(context.Background(), postings)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error: %v", err)
	}
	if result.TotalAnalyzed != 2 {
		t.Errorf("TotalAnalyzed = %d, want 2", result.TotalAnalyzed)
	}
}

func TestAnalyzeBatchEndToEnd(t *testing.T) {
	a, err := New(Config{}, nil, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	postings := []*types.JobPosting{
		testPosting(t, "Senior PM", "Acme", "$120k - $150k",
			"Senior role, fully remote, working on sql analytics and the roadmap. 7+ years required."),
		testPosting(t, "PM", "Beta", "competitive",
			"Hybrid product role with roadmap ownership and jira. 4 years of experience."),
		testPosting(t, "Junior PM", "Gamma", "",
			"Junior role on-site supporting roadmap planning with python tooling."),
	}

	result, err := a.AnalyzeBatch(context.Background(), postings)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error: %v", err)
	}

	if result.TotalAnalyzed != 3 {
		t.Errorf("TotalAnalyzed = %d, want 3", result.TotalAnalyzed)
	}
	// only Acme's salary parses fully; Beta's stays raw, Gamma has none
	if result.SalarySummary == nil {
		t.Fatal("SalarySummary is nil, want sample of 1")
	}
	if result.SalarySummary.SampleSize != 1 {
		t.Errorf("SalarySummary.SampleSize = %d, want 1", result.SalarySummary.SampleSize)
	}
	if result.SalarySummary.MarketMin != 120000 || result.SalarySummary.MarketMax != 150000 {
		t.Errorf("SalarySummary = %+v, want 120000-150000", result.SalarySummary)
	}

	// roadmap appears in all three postings and must lead the table
	if len(result.CommonSkills) == 0 || result.CommonSkills[0].Value != "roadmap" {
		t.Errorf("CommonSkills = %v, want roadmap first", result.CommonSkills)
	}

	mc := result.MarketComparison
	if mc.TotalRolesAnalyzed != 3 {
		t.Errorf("TotalRolesAnalyzed = %d, want 3", mc.TotalRolesAnalyzed)
	}
	if mc.ExperienceLevels[types.LevelSenior] != 1 {
		t.Errorf("ExperienceLevels = %v, want one senior", mc.ExperienceLevels)
	}
	if mc.RemotePolicies[types.RemoteHybrid] != 1 {
		t.Errorf("RemotePolicies = %v, want one hybrid", mc.RemotePolicies)
	}
	// years present for Acme (7) and Beta (4) only
	if got := mc.CommonRequirements.AverageYearsRequired; got != 5.5 {
		t.Errorf("AverageYearsRequired = %v, want 5.5", got)
	}
}

type stubBackend struct {
	nounChunks []string
	entities   []string
	err        error
	calls      int
}

func (s *stubBackend) ExtractPhrases(_ context.Context, _ string) ([]string, []string, error) {
	s.calls++
	return s.nounChunks, s.entities, s.err
}

func TestAnalyzeOneEnhancedAdds(t *testing.T) {
	backend := &stubBackend{nounChunks: []string{"mixpanel funnels"}}
	a, err := New(Config{EnhancedEnabled: true}, backend, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	insight, err := a.AnalyzeOne(context.Background(),
		testPosting(t, "PM", "Acme", "", "Product role working with sql dashboards."))
	if err != nil {
		t.Fatalf("AnalyzeOne() error: %v", err)
	}

	hasSQL, hasMixpanel := false, false
	for _, s := range insight.Skills {
		if s == "sql" {
			hasSQL = true
		}
		if s == "mixpanel" {
			hasMixpanel = true
		}
	}
	if !hasSQL {
		t.Errorf("Skills = %v, rule match sql must survive", insight.Skills)
	}
	if !hasMixpanel {
		t.Errorf("Skills = %v, want mixpanel from enhanced backend", insight.Skills)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
}

func TestAnalyzeOneEnhancedFailureDegrades(t *testing.T) {
	backend := &stubBackend{err: errors.New("backend down")}
	a, err := New(Config{EnhancedEnabled: true}, backend, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	insight, err := a.AnalyzeOne(context.Background(),
		testPosting(t, "PM", "Acme", "", "Product role working with sql dashboards."))
	if err != nil {
		t.Fatalf("AnalyzeOne() must not fail when the backend fails: %v", err)
	}

	found := false
	for _, s := range insight.Skills {
		if s == "sql" {
			found = true
		}
	}
	if !found {
		t.Errorf("Skills = %v, rule results must survive backend failure", insight.Skills)
	}
}

func TestNewWithoutBackendDisablesEnhanced(t *testing.T) {
	a, err := New(Config{EnhancedEnabled: true}, nil, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.enhanced {
		t.Error("enhanced must be off when no backend is available")
	}
}
