package analyzer

import (
	"context"
	"fmt"

	"hiresight/internal/errors"
	"hiresight/internal/types"
)

// Config carries the injected analysis settings.
type Config struct {
	EnhancedEnabled     bool
	MinBatchSize        int
	ConfidenceThreshold float64
	TaxonomyFile        string
}

// DefaultMinBatchSize is the smallest batch accepted by AnalyzeBatch when
// the config does not override it.
const DefaultMinBatchSize = 3

// EnhancedBackend contributes deep-NLP surface forms to skill extraction.
// Its output is strictly additive; a failing backend degrades extraction
// to the rule path.
type EnhancedBackend interface {
	ExtractPhrases(ctx context.Context, text string) (nounChunks, entities []string, err error)
}

// Analyzer turns raw postings into structured insights.
type Analyzer struct {
	matcher  *SkillMatcher
	backend  EnhancedBackend
	enhanced bool
	cfg      Config
	logger   *errors.Logger
}

// New builds an Analyzer. The enhanced path is active only when the config
// enables it and a backend was supplied; the decision is made here, once.
// Callers that fail to construct a backend pass nil and keep going.
func New(cfg Config, backend EnhancedBackend, logger *errors.Logger) (*Analyzer, error) {
	if cfg.MinBatchSize <= 0 {
		cfg.MinBatchSize = DefaultMinBatchSize
	}

	tax := DefaultTaxonomy()
	if cfg.TaxonomyFile != "" {
		loaded, err := LoadTaxonomy(cfg.TaxonomyFile)
		if err != nil {
			return nil, err
		}
		tax = loaded
		logger.Info("Loaded taxonomy override", "path", cfg.TaxonomyFile, "categories", len(tax))
	}

	enhanced := cfg.EnhancedEnabled && backend != nil
	if cfg.EnhancedEnabled && backend == nil {
		logger.Warn("Enhanced extraction requested but no backend available, using rule-based extraction")
	}
	if enhanced {
		logger.Info("Enhanced extraction enabled", "confidence_threshold", cfg.ConfidenceThreshold)
	}

	return &Analyzer{
		matcher:  NewSkillMatcher(tax),
		backend:  backend,
		enhanced: enhanced,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// AnalyzeOne produces the structured insight for a single posting.
func (a *Analyzer) AnalyzeOne(ctx context.Context, posting *types.JobPosting) (*types.PerDocumentInsight, error) {
	if posting == nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "posting is nil", nil)
	}

	text := posting.Description
	skills := a.extractSkills(ctx, text)

	location := posting.Location
	if location == "" {
		location = "Not specified"
	}

	insight := &types.PerDocumentInsight{
		Title:            posting.Title,
		Company:          posting.Company,
		Skills:           skills,
		SkillsByCategory: a.matcher.Categorize(skills),
		Responsibilities: ExtractSections(text, ResponsibilityKeywords, 20, 20),
		Qualifications:   ExtractSections(text, QualificationKeywords, 20, 20),
		ExperienceLevel:  ExtractExperienceLevel(text),
		ExperienceYears:  ExtractYearsExperience(text),
		Salary:           ExtractSalaryInfo(posting.SalaryRange, text),
		Location:         location,
		RemotePolicy:     ExtractRemotePolicy(text),
		CompanyTraits:    ExtractCompanyTraits(text),
		Education:        ExtractEducation(text),
		NiceToHave:       ExtractSections(text, NiceToHaveKeywords, 10, 10),
	}

	a.logger.Debug("Analyzed posting", "title", posting.Title, "company", posting.Company,
		"skills", len(skills))
	return insight, nil
}

// AnalyzeBatch analyzes every posting and aggregates the results. The
// batch size check runs before any per-document work, and any document
// failure aborts the whole batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, postings []*types.JobPosting) (*types.AggregatedAnalysis, error) {
	if len(postings) < a.cfg.MinBatchSize {
		return nil, errors.NewInsufficientDataError(errors.ErrCodeBatchTooSmall,
			fmt.Sprintf("at least %d job postings required for quality analysis, got %d",
				a.cfg.MinBatchSize, len(postings)), nil)
	}

	a.logger.Info("Analyzing posting batch", "count", len(postings))

	insights := make([]*types.PerDocumentInsight, 0, len(postings))
	for i, posting := range postings {
		insight, err := a.AnalyzeOne(ctx, posting)
		if err != nil {
			return nil, errors.NewAnalysisError(errors.ErrCodeExtractionFailed,
				"failed to analyze posting", err).
				WithContext("index", i).
				WithContext("title", posting.Title).
				WithContext("company", posting.Company)
		}
		insights = append(insights, insight)
	}

	result := Aggregate(insights)
	a.logger.Info("Batch analysis complete", "total", result.TotalAnalyzed,
		"unique_skills", len(result.CommonSkills))
	return result, nil
}

// extractSkills runs the rule path and, when active, folds in the
// enhanced backend's phrases. Backend failure logs and degrades.
func (a *Analyzer) extractSkills(ctx context.Context, text string) []string {
	if !a.enhanced {
		return a.matcher.Match(text)
	}

	nounChunks, entities, err := a.backend.ExtractPhrases(ctx, text)
	if err != nil {
		a.logger.Warn("Enhanced extraction failed, falling back to rules", "error", err.Error())
		return a.matcher.Match(text)
	}
	return a.matcher.MatchEnhanced(text, nounChunks, entities)
}
