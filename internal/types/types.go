package types

import (
	"strings"
	"time"

	"hiresight/internal/errors"
)

// Experience level labels produced by the analyzer.
const (
	LevelEntry  = "Entry-Level"
	LevelMid    = "Mid-Level"
	LevelSenior = "Senior"
	LevelLead   = "Lead/Principal"
)

// Remote policy labels produced by the analyzer.
const (
	RemoteFully        = "Fully Remote"
	RemoteHybrid       = "Hybrid"
	RemoteOnSite       = "On-Site"
	RemoteAvailable    = "Remote Available"
	RemoteNotSpecified = "Not Specified"
)

// MinDescriptionWords is the minimum description length for a valid posting.
const MinDescriptionWords = 50

// JobPosting is a raw job posting supplied for analysis.
type JobPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	SalaryRange string `json:"salary_range,omitempty"`
	Description string `json:"description"`
}

// NewJobPosting validates and constructs a posting. The description must
// carry at least MinDescriptionWords whitespace-separated words.
func NewJobPosting(title, company, location, salaryRange, description string) (*JobPosting, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "posting title is required", nil)
	}
	if strings.TrimSpace(company) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "posting company is required", nil)
	}
	if len(strings.Fields(description)) < MinDescriptionWords {
		return nil, errors.NewValidationError(errors.ErrCodeDescriptionTooShort,
			"description must contain at least 50 words", nil).
			WithContext("title", title).
			WithContext("company", company)
	}
	return &JobPosting{
		Title:       title,
		Company:     company,
		Location:    location,
		SalaryRange: salaryRange,
		Description: description,
	}, nil
}

// SalaryInfo holds a parsed salary range. Min/Max/Average are zero and
// Parsed false when only the raw range text was recoverable.
type SalaryInfo struct {
	Min     int    `json:"min,omitempty"`
	Max     int    `json:"max,omitempty"`
	Average int    `json:"average,omitempty"`
	Range   string `json:"range,omitempty"`
	Parsed  bool   `json:"-"`
}

// Empty reports whether no salary information was found at all.
func (s SalaryInfo) Empty() bool {
	return !s.Parsed && s.Range == ""
}

// CompanyTraits holds stage and size hints detected in posting text.
type CompanyTraits struct {
	Stage string `json:"stage,omitempty"`
	Size  string `json:"size,omitempty"`
}

// PerDocumentInsight is the structured result of analyzing one posting.
type PerDocumentInsight struct {
	Title            string              `json:"title"`
	Company          string              `json:"company"`
	Skills           []string            `json:"skills"`
	SkillsByCategory map[string][]string `json:"skills_by_category"`
	Responsibilities []string            `json:"responsibilities"`
	Qualifications   []string            `json:"qualifications"`
	ExperienceLevel  string              `json:"experience_level"`
	ExperienceYears  *int                `json:"experience_years,omitempty"`
	Salary           SalaryInfo          `json:"salary_range"`
	Location         string              `json:"location"`
	RemotePolicy     string              `json:"remote_policy"`
	CompanyTraits    CompanyTraits       `json:"company_info"`
	Education        []string            `json:"required_education"`
	NiceToHave       []string            `json:"nice_to_have"`
}

// SalarySummary aggregates fully parsed salaries across a batch.
type SalarySummary struct {
	MarketMin  int `json:"market_min"`
	MarketMax  int `json:"market_max"`
	AverageMin int `json:"average_min"`
	AverageMax int `json:"average_max"`
	SampleSize int `json:"sample_size"`
}

// CommonRequirements captures patterns shared across a batch.
type CommonRequirements struct {
	TopSkills             []string `json:"top_skills"`
	AverageYearsRequired  float64  `json:"average_years_required,omitempty"`
	EducationReqFrequency float64  `json:"education_requirement_frequency"`
}

// MarketComparison summarizes the batch along market dimensions.
type MarketComparison struct {
	TotalRolesAnalyzed int                `json:"total_roles_analyzed"`
	ExperienceLevels   map[string]int     `json:"experience_levels"`
	RemotePolicies     map[string]int     `json:"remote_policies"`
	CommonRequirements CommonRequirements `json:"common_requirements"`
}

// FrequencyEntry is one row of a frequency table, ordered by count
// descending with first-seen order breaking ties.
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AggregatedAnalysis is the result of analyzing a batch of postings.
type AggregatedAnalysis struct {
	TotalAnalyzed          int                   `json:"total_analyzed"`
	CommonSkills           []FrequencyEntry      `json:"common_skills"`
	CommonResponsibilities []FrequencyEntry      `json:"common_responsibilities"`
	CommonQualifications   []FrequencyEntry      `json:"common_qualifications"`
	Insights               []*PerDocumentInsight `json:"insights"`
	SalarySummary          *SalarySummary        `json:"salary_insights,omitempty"`
	MarketComparison       MarketComparison      `json:"market_comparison"`
}

// CompanyProfile describes the hiring company for document generation.
type CompanyProfile struct {
	CompanyName       string   `json:"company_name"`
	Department        string   `json:"department,omitempty"`
	ExperienceLevel   string   `json:"experience_level,omitempty"`
	Location          string   `json:"location,omitempty"`
	EmploymentType    string   `json:"employment_type,omitempty"`
	Mission           string   `json:"mission,omitempty"`
	About             string   `json:"about,omitempty"`
	ProductFocus      string   `json:"product_focus,omitempty"`
	SalaryRange       string   `json:"salary_range,omitempty"`
	Equity            string   `json:"equity,omitempty"`
	Bonus             string   `json:"bonus,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	Responsibilities  []string `json:"custom_responsibilities,omitempty"`
	RequiredQuals     []string `json:"required_qualifications,omitempty"`
	PreferredQuals    []string `json:"preferred_qualifications,omitempty"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
	ApplyInstructions string   `json:"application_instructions,omitempty"`
}

// HiringGoals holds targets and constraints for the hiring plan.
type HiringGoals struct {
	TargetHeadcount int      `json:"target_headcount"`
	Urgency         string   `json:"urgency,omitempty"`
	HiringManager   string   `json:"hiring_manager,omitempty"`
	StartDate       string   `json:"start_date,omitempty"`
	BudgetMax       int      `json:"budget_max,omitempty"`
	Differentiators []string `json:"differentiators,omitempty"`
}

// HiringProcessConfig tunes interview rubric generation.
type HiringProcessConfig struct {
	IncludeTechnical  bool     `json:"include_technical"`
	IncludeLeadership bool     `json:"include_leadership"`
	CustomStages      []string `json:"custom_stages,omitempty"`
}

// DocumentMetadata is shared by all generated documents.
type DocumentMetadata struct {
	GeneratedAt     time.Time `json:"generated_at"`
	Company         string    `json:"company"`
	Role            string    `json:"role,omitempty"`
	Department      string    `json:"department,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
}

// JobHeader is the headline block of a generated job description.
type JobHeader struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Department string `json:"department"`
}

// Qualifications splits required from preferred items.
type Qualifications struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

// Compensation is the compensation block of a generated job description.
type Compensation struct {
	SalaryRange string `json:"salary_range"`
	Equity      string `json:"equity"`
	Bonus       string `json:"bonus"`
}

// GeneratedJobDescription is a complete generated posting document.
type GeneratedJobDescription struct {
	Metadata         DocumentMetadata    `json:"metadata"`
	Header           JobHeader           `json:"header"`
	Overview         string              `json:"overview"`
	Responsibilities []string            `json:"responsibilities"`
	Qualifications   Qualifications      `json:"qualifications"`
	Skills           map[string][]string `json:"skills"`
	Compensation     Compensation        `json:"compensation"`
	Benefits         []string            `json:"benefits"`
	HowToApply       string              `json:"how_to_apply"`
}

// CandidateProfile describes the ideal candidate for a level.
type CandidateProfile struct {
	Background []string `json:"background"`
	Experience []string `json:"experience"`
	Traits     []string `json:"traits"`
}

// SourcingChannel is one channel in the sourcing plan.
type SourcingChannel struct {
	Name       string   `json:"name"`
	Priority   string   `json:"priority"`
	Share      string   `json:"expected_percentage"`
	Activities []string `json:"activities"`
}

// RiskItem pairs a hiring risk with its mitigation.
type RiskItem struct {
	Risk       string `json:"risk"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// HiringPlan is a generated hiring strategy document.
type HiringPlan struct {
	Metadata         DocumentMetadata  `json:"metadata"`
	TargetHeadcount  int               `json:"target_headcount"`
	Urgency          string            `json:"urgency"`
	Overview         string            `json:"overview"`
	KeyPriorities    []string          `json:"key_priorities"`
	TargetProfile    CandidateProfile  `json:"target_candidate_profile"`
	SourcingChannels []SourcingChannel `json:"sourcing_channels"`
	PipelineGoals    map[string]int    `json:"pipeline_goals"`
	TimelineWeeks    int               `json:"timeline_weeks"`
	Risks            []RiskItem        `json:"risks_and_mitigations"`
}

// InterviewStage is one stage of the interview loop.
type InterviewStage struct {
	Name         string   `json:"stage_name"`
	Number       int      `json:"stage_number"`
	Duration     string   `json:"duration"`
	Interviewer  string   `json:"interviewer"`
	Format       string   `json:"format"`
	Objectives   []string `json:"objectives"`
	KeyQuestions []string `json:"key_questions"`
	Criteria     []string `json:"evaluation_criteria"`
	RedFlags     []string `json:"red_flags,omitempty"`
}

// ScoringLevel is one row of the interview scoring scale.
type ScoringLevel struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// InterviewRubric is a generated structured interview guide.
type InterviewRubric struct {
	Metadata     DocumentMetadata `json:"metadata"`
	TotalTime    string           `json:"total_interview_time"`
	Stages       []InterviewStage `json:"interview_stages"`
	ScoringGuide []ScoringLevel   `json:"scoring_guide"`
	DecisionRule string           `json:"decision_rule"`
}

// TimelinePhase is one phase of the hiring timeline.
type TimelinePhase struct {
	Number          int      `json:"phase_number"`
	Name            string   `json:"phase_name"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	DurationWeeks   int      `json:"duration_weeks"`
	Objectives      []string `json:"objectives"`
	Deliverables    []string `json:"deliverables"`
	SuccessCriteria string   `json:"success_criteria"`
}

// Milestone is a dated checkpoint in the hiring timeline.
type Milestone struct {
	Name string `json:"milestone"`
	Date string `json:"date"`
}

// HiringTimeline is a generated week-by-week hiring schedule.
type HiringTimeline struct {
	Metadata       DocumentMetadata `json:"metadata"`
	StartDate      string           `json:"start_date"`
	DurationWeeks  int              `json:"estimated_duration_weeks"`
	TargetHireDate string           `json:"target_hire_date"`
	Phases         []TimelinePhase  `json:"phases"`
	Milestones     []Milestone      `json:"milestones"`
}

// HiringPackage bundles every generated artifact for one request.
type HiringPackage struct {
	Analysis       *AggregatedAnalysis      `json:"analysis"`
	JobDescription *GeneratedJobDescription `json:"job_description"`
	HiringPlan     *HiringPlan              `json:"hiring_plan"`
	Rubric         *InterviewRubric         `json:"interview_rubric"`
	Timeline       *HiringTimeline          `json:"timeline"`
}

// UsageRecord is one analytics entry for a processed request.
type UsageRecord struct {
	RequestID       string    `json:"request_id"`
	Operation       string    `json:"operation"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	ProcessingTime  float64   `json:"processing_time"`
	Success         bool      `json:"success"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// FeedbackRecord tracks a hiring outcome reported after the fact.
type FeedbackRecord struct {
	CandidateID       string    `json:"candidate_id"`
	Role              string    `json:"role"`
	Hired             bool      `json:"hired"`
	TimeToHireDays    int       `json:"time_to_hire,omitempty"`
	PerformanceRating float64   `json:"performance_rating,omitempty"`
	RetentionMonths   int       `json:"retention_months,omitempty"`
	Notes             string    `json:"feedback_notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
