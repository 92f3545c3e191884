package cli

import (
	"encoding/json"
	"fmt"

	"hiresight/internal/analytics"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics and hiring outcome insights",
	Long: `Summarize tracked usage over the trailing window together with
hiring outcome insights and operational recommendations.`,
	RunE: runStats,
}

var statsDays int

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 30, "Trailing window in days")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	usageTracker, err := analytics.New(cfg.Analytics, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics: %w", err)
	}

	usage, err := usageTracker.GetUsageStats(statsDays)
	if err != nil {
		return fmt.Errorf("failed to read usage stats: %w", err)
	}
	feedback, err := usageTracker.GetFeedbackInsights()
	if err != nil {
		return fmt.Errorf("failed to read feedback insights: %w", err)
	}

	summary := map[string]any{
		"usage":            usage,
		"feedback":         feedback,
		"recommendations":  usageTracker.GenerateRecommendations(),
		"analytics_path":   cfg.Analytics.StoragePath,
		"window_days":      statsDays,
		"enhanced_enabled": cfg.Analysis.Enhanced.Enabled,
	}

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
