package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"hiresight/internal/analytics"
	"hiresight/internal/common"
	"hiresight/internal/generators"
	"hiresight/internal/types"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [analysis-file]",
	Short: "Generate a complete hiring package",
	Long: `Generate a complete hiring package: a job description, a hiring
plan with sourcing channels and pipeline goals, a structured interview
rubric, and a week-by-week hiring timeline.

The optional analysis file is the JSON output of a batch analysis; when
provided, its common skills, responsibilities, and qualifications are
merged into the generated job description. The company profile file is
required and describes the hiring company.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if generateConfig.OutputFormat == "" {
			generateConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(generateConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runGenerate,
}

var (
	generateConfig    common.CommandConfig
	profileFile       string
	goalsFile         string
	startDate         string
	includeTechnical  bool
	includeLeadership bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	generateCmd.Flags().StringVar(&generateConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	generateCmd.Flags().StringVar(&profileFile, "profile", "", "Company profile file (JSON, required)")
	generateCmd.Flags().StringVar(&goalsFile, "goals", "", "Hiring goals file (JSON)")
	generateCmd.Flags().StringVar(&startDate, "start-date", "", "Timeline start date (YYYY-MM-DD, default: today)")
	generateCmd.Flags().BoolVar(&includeTechnical, "include-technical", false, "Include a technical interview stage")
	generateCmd.Flags().BoolVar(&includeLeadership, "include-leadership", false, "Include a leadership interview stage")
	_ = generateCmd.MarkFlagRequired("profile")

	_ = generateCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	var analysis *types.AggregatedAnalysis
	if len(args) == 1 {
		content, err := fileProcessor.ReadFile(args[0])
		if err != nil {
			return err
		}
		analysis = &types.AggregatedAnalysis{}
		if err := json.Unmarshal([]byte(content), analysis); err != nil {
			return fmt.Errorf("cannot parse analysis file %s: %w", args[0], err)
		}
	}

	var profile types.CompanyProfile
	profileContent, err := fileProcessor.ReadFile(profileFile)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(profileContent), &profile); err != nil {
		return fmt.Errorf("cannot parse company profile %s: %w", profileFile, err)
	}

	var goals types.HiringGoals
	if goalsFile != "" {
		goalsContent, err := fileProcessor.ReadFile(goalsFile)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(goalsContent), &goals); err != nil {
			return fmt.Errorf("cannot parse hiring goals %s: %w", goalsFile, err)
		}
	}

	usageTracker, err := analytics.New(cfg.Analytics, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics: %w", err)
	}

	logger.Info("Starting hiring package generation",
		"company", profile.CompanyName,
		"experience_level", profile.ExperienceLevel,
		"with_analysis", analysis != nil,
		"output_format", generateConfig.OutputFormat)

	requestID := uuid.NewString()
	start := time.Now()

	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	jd := generators.NewJobDescription(analysis, profile)
	plan := generators.NewHiringPlan(jd, goals)
	rubric := generators.NewInterviewRubric(jd, types.HiringProcessConfig{
		IncludeTechnical:  includeTechnical,
		IncludeLeadership: includeLeadership,
	})
	timeline, err := generators.NewHiringTimeline(jd, plan, startDate)

	usage := types.UsageRecord{
		RequestID:       requestID,
		Operation:       "generate",
		ExperienceLevel: jd.Metadata.ExperienceLevel,
		ProcessingTime:  time.Since(start).Seconds(),
		Success:         err == nil,
	}
	if err != nil {
		usage.ErrorMessage = err.Error()
	}
	if trackErr := usageTracker.TrackUsage(usage); trackErr != nil {
		logger.Warn("Failed to track usage", "error", trackErr.Error())
	}

	if err != nil {
		return fmt.Errorf("failed to generate hiring package: %w", err)
	}

	pkg := &types.HiringPackage{
		Analysis:       analysis,
		JobDescription: jd,
		HiringPlan:     plan,
		Rubric:         rubric,
		Timeline:       timeline,
	}

	if err := outputHandler.HandleOutput(pkg, generateConfig); err != nil {
		return err
	}
	logger.Info("Hiring package generated successfully", "request_id", requestID)
	return nil
}
