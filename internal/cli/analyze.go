package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"hiresight/internal/ai"
	"hiresight/internal/analyzer"
	"hiresight/internal/common"
	"hiresight/internal/config"
	"hiresight/internal/errors"
	"hiresight/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [posting-file]",
	Short: "Analyze a single job posting",
	Long: `Analyze a single job posting and extract structured insight:
skills by taxonomy category, responsibilities, qualifications, experience
level, salary range, remote policy, and education requirements.

The posting file is a JSON object with title, company, and description
fields. Location and salary_range are optional.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// newAnalyzer builds the posting analyzer, wiring the AI extraction
// backend when enhanced analysis is enabled. Backend construction
// failures degrade to rule-based extraction instead of aborting.
func newAnalyzer(cfg *config.Config, logger *errors.Logger) (*analyzer.Analyzer, error) {
	var backend analyzer.EnhancedBackend
	if cfg.Analysis.Enhanced.Enabled {
		extractCfg := cfg.GetExtractConfig()
		service, err := ai.NewService(&extractCfg, "extract", logger)
		if err != nil {
			logger.Warn("AI backend unavailable, falling back to rule-based extraction", "error", err.Error())
		} else {
			backend = service.Backend
		}
	}

	return analyzer.New(analyzer.Config{
		EnhancedEnabled:     cfg.Analysis.Enhanced.Enabled,
		MinBatchSize:        cfg.Analysis.MinBatchSize,
		ConfidenceThreshold: cfg.Analysis.ConfidenceThreshold,
		TaxonomyFile:        cfg.Analysis.TaxonomyFile,
	}, backend, logger)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	jobAnalyzer, err := newAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	createInput := func(contents []string) (*types.JobPosting, error) {
		if len(contents) != 1 {
			return nil, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		var posting types.JobPosting
		if err := json.Unmarshal([]byte(contents[0]), &posting); err != nil {
			return nil, fmt.Errorf("cannot parse posting: %w", err)
		}
		return types.NewJobPosting(posting.Title, posting.Company, posting.Location, posting.SalaryRange, posting.Description)
	}

	logDetails := func(input *types.JobPosting, cfg common.CommandConfig) {
		logger.Info("Starting posting analysis",
			"title", input.Title,
			"company", input.Company,
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input *types.JobPosting) (*types.PerDocumentInsight, error) {
		return jobAnalyzer.AnalyzeOne(ctx, input)
	}

	err = common.RunCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze posting: %w", err)
	}
	logger.Info("Posting analysis completed successfully")
	return nil
}
