package cli

import (
	"fmt"
	"time"

	"hiresight/internal/analytics"
	"hiresight/internal/cache"
	"hiresight/internal/common"
	"hiresight/internal/types"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [posting-files...]",
	Short: "Analyze a batch of job postings and aggregate market patterns",
	Long: `Analyze a batch of job postings and aggregate the results into a
market view: common skills, responsibilities, and qualifications with
frequencies, salary insights across parsed ranges, and a market
comparison of experience levels and remote policies.

Each file holds a JSON posting object or a JSON array of postings. At
least three postings are required for aggregation.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if batchConfig.OutputFormat == "" {
			batchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(batchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runBatch,
}

var batchConfig common.CommandConfig

func init() {
	batchCmd.Flags().StringVarP(&batchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	batchCmd.Flags().StringVar(&batchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = batchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	postings, err := fileProcessor.LoadPostings(args...)
	if err != nil {
		return err
	}

	jobAnalyzer, err := newAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	resultCache := cache.New(cfg.Cache, logger)
	usageTracker, err := analytics.New(cfg.Analytics, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics: %w", err)
	}

	logger.Info("Starting batch analysis",
		"postings", len(postings),
		"files", len(args),
		"output_format", batchConfig.OutputFormat)

	requestID := uuid.NewString()
	start := time.Now()

	var analysis *types.AggregatedAnalysis
	cacheKey := cache.Key("batch", postings, cfg.Analysis.Enhanced.Enabled)
	if cached, ok := resultCache.Get(cacheKey); ok {
		analysis = cached.(*types.AggregatedAnalysis)
		logger.Info("Batch analysis served from cache", "request_id", requestID)
	} else {
		batch := make([]*types.JobPosting, len(postings))
		for i := range postings {
			batch[i] = &postings[i]
		}
		analysis, err = jobAnalyzer.AnalyzeBatch(cmd.Context(), batch)
		if err == nil {
			resultCache.Set(cacheKey, analysis)
		}
	}

	usage := types.UsageRecord{
		RequestID:      requestID,
		Operation:      "batch_analyze",
		ProcessingTime: time.Since(start).Seconds(),
		Success:        err == nil,
	}
	if err != nil {
		usage.ErrorMessage = err.Error()
	}
	if trackErr := usageTracker.TrackUsage(usage); trackErr != nil {
		logger.Warn("Failed to track usage", "error", trackErr.Error())
	}

	if err != nil {
		return fmt.Errorf("failed to analyze batch: %w", err)
	}

	if err := outputHandler.HandleOutput(analysis, batchConfig); err != nil {
		return err
	}
	logger.Info("Batch analysis completed successfully",
		"request_id", requestID, "postings", analysis.TotalAnalyzed)
	return nil
}
