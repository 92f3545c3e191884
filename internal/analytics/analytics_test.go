package analytics

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hiresight/internal/config"
	"hiresight/internal/errors"
	"hiresight/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(config.AnalyticsConfig{Enabled: true, StoragePath: t.TempDir()},
		errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m == nil {
		t.Fatal("New() returned nil for enabled analytics")
	}
	return m
}

func TestManagerDisabled(t *testing.T) {
	m, err := New(config.AnalyticsConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m != nil {
		t.Fatal("New() should return nil when disabled")
	}

	// nil manager swallows records and reports disabled
	if err := m.TrackUsage(types.UsageRecord{RequestID: "r1"}); err != nil {
		t.Errorf("TrackUsage() on nil manager: %v", err)
	}
	stats, err := m.GetUsageStats(30)
	if err != nil || stats.Enabled {
		t.Errorf("GetUsageStats() = %+v, %v, want disabled", stats, err)
	}
}

func TestTrackUsageAndStats(t *testing.T) {
	m := newTestManager(t)

	records := []types.UsageRecord{
		{RequestID: "r1", Operation: "batch_analyze", ExperienceLevel: types.LevelSenior, ProcessingTime: 2.0, Success: true},
		{RequestID: "r2", Operation: "batch_analyze", ExperienceLevel: types.LevelSenior, ProcessingTime: 4.0, Success: true},
		{RequestID: "r3", Operation: "generate", ExperienceLevel: types.LevelMid, Success: false, ErrorMessage: "boom"},
	}
	for _, rec := range records {
		if err := m.TrackUsage(rec); err != nil {
			t.Fatalf("TrackUsage() error: %v", err)
		}
	}

	// daily rotation uses today's date in the filename
	name := "usage_" + time.Now().Format("2006-01-02") + ".jsonl"
	if _, err := os.Stat(filepath.Join(m.dir, name)); err != nil {
		t.Fatalf("expected daily log %s: %v", name, err)
	}

	stats, err := m.GetUsageStats(30)
	if err != nil {
		t.Fatalf("GetUsageStats() error: %v", err)
	}
	if stats.TotalRequests != 3 || stats.Successful != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 3 total, 2 ok, 1 failed", stats)
	}
	if stats.SuccessRate != 66.67 {
		t.Errorf("SuccessRate = %v, want 66.67", stats.SuccessRate)
	}
	if stats.AverageProcessingTime != 3.0 {
		t.Errorf("AverageProcessingTime = %v, want 3.0 over successful only", stats.AverageProcessingTime)
	}
	if stats.ByExperienceLevel[types.LevelSenior] != 2 {
		t.Errorf("ByExperienceLevel = %v", stats.ByExperienceLevel)
	}
}

func TestUsageStatsWindow(t *testing.T) {
	m := newTestManager(t)

	old := types.UsageRecord{RequestID: "old", Operation: "analyze", Success: true,
		Timestamp: time.Now().AddDate(0, 0, -45)}
	if err := m.TrackUsage(old); err != nil {
		t.Fatalf("TrackUsage() error: %v", err)
	}
	recent := types.UsageRecord{RequestID: "new", Operation: "analyze", Success: true}
	if err := m.TrackUsage(recent); err != nil {
		t.Fatalf("TrackUsage() error: %v", err)
	}

	stats, err := m.GetUsageStats(30)
	if err != nil {
		t.Fatalf("GetUsageStats() error: %v", err)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1 inside the 30-day window", stats.TotalRequests)
	}
}

func TestUsageStatsSkipsMalformedLines(t *testing.T) {
	m := newTestManager(t)

	if err := m.TrackUsage(types.UsageRecord{RequestID: "ok", Success: true}); err != nil {
		t.Fatal(err)
	}
	name := "usage_" + time.Now().Format("2006-01-02") + ".jsonl"
	f, err := os.OpenFile(filepath.Join(m.dir, name), os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json}\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	stats, err := m.GetUsageStats(30)
	if err != nil {
		t.Fatalf("GetUsageStats() error: %v", err)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1 with malformed line skipped", stats.TotalRequests)
	}
}

func TestFeedbackInsights(t *testing.T) {
	m := newTestManager(t)

	feedback := []types.FeedbackRecord{
		{CandidateID: "c1", Role: "PM", Hired: true, TimeToHireDays: 40, PerformanceRating: 4.5, RetentionMonths: 14},
		{CandidateID: "c2", Role: "PM", Hired: true, TimeToHireDays: 50, PerformanceRating: 3.5},
		{CandidateID: "c3", Role: "PM", Hired: false, TimeToHireDays: 90},
	}
	for _, rec := range feedback {
		if err := m.RecordFeedback(rec); err != nil {
			t.Fatalf("RecordFeedback() error: %v", err)
		}
	}

	insights, err := m.GetFeedbackInsights()
	if err != nil {
		t.Fatalf("GetFeedbackInsights() error: %v", err)
	}
	if insights.TotalFeedback != 3 || insights.HiredCount != 2 {
		t.Errorf("insights = %+v, want 3 total 2 hired", insights)
	}
	if insights.HireRate != 66.67 {
		t.Errorf("HireRate = %v, want 66.67", insights.HireRate)
	}
	// non-hires must not drag time-to-hire or rating averages
	if insights.AvgTimeToHireDays == nil || *insights.AvgTimeToHireDays != 45 {
		t.Errorf("AvgTimeToHireDays = %v, want 45", insights.AvgTimeToHireDays)
	}
	if insights.AvgPerformance == nil || *insights.AvgPerformance != 4.0 {
		t.Errorf("AvgPerformance = %v, want 4.0", insights.AvgPerformance)
	}
	if insights.AvgRetentionMonths == nil || *insights.AvgRetentionMonths != 14 {
		t.Errorf("AvgRetentionMonths = %v, want 14", insights.AvgRetentionMonths)
	}
}

func TestFeedbackInsightsNoFile(t *testing.T) {
	m := newTestManager(t)
	insights, err := m.GetFeedbackInsights()
	if err != nil {
		t.Fatalf("GetFeedbackInsights() error: %v", err)
	}
	if insights.TotalFeedback != 0 || !insights.Enabled {
		t.Errorf("insights = %+v, want enabled empty summary", insights)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	m := newTestManager(t)

	clean := m.GenerateRecommendations()
	if len(clean) != 1 || !strings.Contains(clean[0], "No recommendations") {
		t.Errorf("recommendations = %v, want the all-clear message", clean)
	}

	for range 10 {
		if err := m.TrackUsage(types.UsageRecord{RequestID: "f", Success: false}); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.RecordFeedback(types.FeedbackRecord{CandidateID: "c", Hired: true, TimeToHireDays: 90}); err != nil {
		t.Fatal(err)
	}

	recs := m.GenerateRecommendations()
	joined := strings.Join(recs, " ")
	if !strings.Contains(joined, "Success rate is below 90%") {
		t.Errorf("recommendations = %v, want success-rate warning", recs)
	}
	if !strings.Contains(joined, "time to hire") {
		t.Errorf("recommendations = %v, want time-to-hire warning", recs)
	}
}
