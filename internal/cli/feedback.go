package cli

import (
	"fmt"

	"hiresight/internal/analytics"
	"hiresight/internal/types"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record a hiring outcome",
	Long: `Record the outcome of a hiring process so future recommendations
can learn from it. Feedback covers whether the candidate was hired, how
long the process took, and how the hire performed.`,
	RunE: runFeedback,
}

var feedbackRecord types.FeedbackRecord

func init() {
	feedbackCmd.Flags().StringVar(&feedbackRecord.CandidateID, "candidate", "", "Candidate identifier (required)")
	feedbackCmd.Flags().StringVar(&feedbackRecord.Role, "role", "", "Role the candidate interviewed for")
	feedbackCmd.Flags().BoolVar(&feedbackRecord.Hired, "hired", false, "Whether the candidate was hired")
	feedbackCmd.Flags().IntVar(&feedbackRecord.TimeToHireDays, "time-to-hire", 0, "Days from first contact to offer acceptance")
	feedbackCmd.Flags().Float64Var(&feedbackRecord.PerformanceRating, "rating", 0, "Performance rating of the hire (1-5)")
	feedbackCmd.Flags().IntVar(&feedbackRecord.RetentionMonths, "retention", 0, "Months the hire stayed")
	feedbackCmd.Flags().StringVar(&feedbackRecord.Notes, "notes", "", "Free-form notes")
	_ = feedbackCmd.MarkFlagRequired("candidate")
}

func runFeedback(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	usageTracker, err := analytics.New(cfg.Analytics, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics: %w", err)
	}
	if usageTracker == nil {
		return fmt.Errorf("analytics is disabled, enable it to record feedback")
	}

	if err := usageTracker.RecordFeedback(feedbackRecord); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Printf("Feedback recorded for candidate %s\n", feedbackRecord.CandidateID)
	return nil
}
