// Package analytics tracks request usage and hiring outcome feedback in
// append-only JSONL files and summarizes them for the stats surface.
package analytics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hiresight/internal/config"
	"hiresight/internal/errors"
	"hiresight/internal/types"
)

// Manager appends usage and feedback records under a storage directory.
// Usage records rotate daily (usage_YYYY-MM-DD.jsonl); feedback shares a
// single feedback.jsonl. A nil *Manager is a disabled manager.
type Manager struct {
	mu     sync.Mutex
	dir    string
	logger *errors.Logger
}

// New creates an analytics manager, creating the storage directory if
// needed. Returns nil when analytics is disabled.
func New(cfg config.AnalyticsConfig, logger *errors.Logger) (*Manager, error) {
	if !cfg.Enabled {
		if logger != nil {
			logger.Info("Analytics disabled")
		}
		return nil, nil
	}

	dir := cfg.StoragePath
	if dir == "" {
		dir = "data/analytics"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to create analytics storage directory", err).WithContext("path", dir)
	}

	return &Manager{dir: dir, logger: logger}, nil
}

// TrackUsage appends a usage record to today's log file.
func (m *Manager) TrackUsage(rec types.UsageRecord) error {
	if m == nil {
		return nil
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	name := fmt.Sprintf("usage_%s.jsonl", rec.Timestamp.Format("2006-01-02"))
	if err := m.appendRecord(name, rec); err != nil {
		return err
	}

	m.logger.Debug("Tracked usage", "request_id", rec.RequestID, "operation", rec.Operation)
	return nil
}

// RecordFeedback appends a hiring outcome record to feedback.jsonl.
func (m *Manager) RecordFeedback(rec types.FeedbackRecord) error {
	if m == nil {
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	if err := m.appendRecord("feedback.jsonl", rec); err != nil {
		return err
	}

	m.logger.Info("Recorded feedback", "candidate_id", rec.CandidateID, "role", rec.Role)
	return nil
}

func (m *Manager) appendRecord(name string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode analytics record", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := filepath.Join(m.dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to open analytics log", err).WithContext("path", path)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to append analytics record", err).WithContext("path", path)
	}
	return nil
}

// UsageStats summarizes usage over the trailing period.
type UsageStats struct {
	Enabled               bool           `json:"enabled"`
	PeriodDays            int            `json:"period_days"`
	TotalRequests         int            `json:"total_requests"`
	Successful            int            `json:"successful"`
	Failed                int            `json:"failed"`
	SuccessRate           float64        `json:"success_rate"`
	ByExperienceLevel     map[string]int `json:"by_experience_level,omitempty"`
	AverageProcessingTime float64        `json:"average_processing_time"`
	RequestsPerDay        float64        `json:"requests_per_day"`
}

// GetUsageStats reads all usage logs and summarizes records newer than
// the trailing window. Malformed lines are skipped.
func (m *Manager) GetUsageStats(days int) (UsageStats, error) {
	if m == nil {
		return UsageStats{Enabled: false}, nil
	}
	if days <= 0 {
		days = 30
	}

	stats := UsageStats{Enabled: true, PeriodDays: days}
	cutoff := time.Now().AddDate(0, 0, -days)

	files, err := filepath.Glob(filepath.Join(m.dir, "usage_*.jsonl"))
	if err != nil {
		return stats, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to list usage logs", err)
	}

	byLevel := make(map[string]int)
	var totalProcessing float64
	var processingCount int

	for _, file := range files {
		records := readUsageFile(file, m.logger)
		for _, rec := range records {
			if rec.Timestamp.Before(cutoff) {
				continue
			}
			stats.TotalRequests++
			if rec.Success {
				stats.Successful++
				totalProcessing += rec.ProcessingTime
				processingCount++
			} else {
				stats.Failed++
			}
			if rec.ExperienceLevel != "" {
				byLevel[rec.ExperienceLevel]++
			}
		}
	}

	if stats.TotalRequests > 0 {
		stats.SuccessRate = round2(float64(stats.Successful) / float64(stats.TotalRequests) * 100)
	}
	if processingCount > 0 {
		stats.AverageProcessingTime = round2(totalProcessing / float64(processingCount))
	}
	stats.RequestsPerDay = round2(float64(stats.TotalRequests) / float64(days))
	if len(byLevel) > 0 {
		stats.ByExperienceLevel = byLevel
	}

	return stats, nil
}

func readUsageFile(path string, logger *errors.Logger) []types.UsageRecord {
	f, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.Warn("Skipping unreadable usage log", "path", path, "error", err.Error())
		}
		return nil
	}
	defer f.Close()

	var records []types.UsageRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec types.UsageRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// FeedbackInsights summarizes hiring outcomes. Averages are nil when no
// record carries the underlying field.
type FeedbackInsights struct {
	Enabled            bool     `json:"enabled"`
	TotalFeedback      int      `json:"total_feedback"`
	HiredCount         int      `json:"hired_count"`
	HireRate           float64  `json:"hire_rate"`
	AvgTimeToHireDays  *float64 `json:"average_time_to_hire_days,omitempty"`
	AvgPerformance     *float64 `json:"average_performance_rating,omitempty"`
	AvgRetentionMonths *float64 `json:"average_retention_months,omitempty"`
}

// GetFeedbackInsights reads feedback.jsonl and summarizes hiring
// outcomes. Time-to-hire and performance averages only cover hired
// candidates.
func (m *Manager) GetFeedbackInsights() (FeedbackInsights, error) {
	if m == nil {
		return FeedbackInsights{Enabled: false}, nil
	}

	insights := FeedbackInsights{Enabled: true}

	path := filepath.Join(m.dir, "feedback.jsonl")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return insights, nil
		}
		return insights, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to open feedback log", err).WithContext("path", path)
	}
	defer f.Close()

	var timeSum, ratingSum, retentionSum float64
	var timeCount, ratingCount, retentionCount int

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec types.FeedbackRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}

		insights.TotalFeedback++
		if rec.Hired {
			insights.HiredCount++
			if rec.TimeToHireDays > 0 {
				timeSum += float64(rec.TimeToHireDays)
				timeCount++
			}
			if rec.PerformanceRating > 0 {
				ratingSum += rec.PerformanceRating
				ratingCount++
			}
		}
		if rec.RetentionMonths > 0 {
			retentionSum += float64(rec.RetentionMonths)
			retentionCount++
		}
	}

	if insights.TotalFeedback > 0 {
		insights.HireRate = round2(float64(insights.HiredCount) / float64(insights.TotalFeedback) * 100)
	}
	if timeCount > 0 {
		v := round1(timeSum / float64(timeCount))
		insights.AvgTimeToHireDays = &v
	}
	if ratingCount > 0 {
		v := round2(ratingSum / float64(ratingCount))
		insights.AvgPerformance = &v
	}
	if retentionCount > 0 {
		v := round1(retentionSum / float64(retentionCount))
		insights.AvgRetentionMonths = &v
	}

	return insights, nil
}

// GenerateRecommendations derives operational advice from usage and
// feedback summaries.
func (m *Manager) GenerateRecommendations() []string {
	if m == nil {
		return nil
	}

	var recommendations []string

	if stats, err := m.GetUsageStats(30); err == nil && stats.TotalRequests > 0 {
		if stats.SuccessRate < 90 {
			recommendations = append(recommendations,
				"Success rate is below 90%. Review error logs to identify common issues.")
		}
		if stats.AverageProcessingTime > 60 {
			recommendations = append(recommendations,
				"Average processing time exceeds 60 seconds. Consider optimizing analysis pipeline.")
		}
	}

	if insights, err := m.GetFeedbackInsights(); err == nil {
		if insights.AvgTimeToHireDays != nil && *insights.AvgTimeToHireDays > 60 {
			recommendations = append(recommendations,
				fmt.Sprintf("Average time to hire is %.0f days. Consider streamlining interview process.", *insights.AvgTimeToHireDays))
		}
		if insights.AvgPerformance != nil && *insights.AvgPerformance < 3.5 {
			recommendations = append(recommendations,
				fmt.Sprintf("Average hire performance rating is %.1f/5.0. Review interview criteria.", *insights.AvgPerformance))
		}
	}

	if len(recommendations) == 0 {
		return []string{"No recommendations at this time. System performing well!"}
	}
	return recommendations
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
