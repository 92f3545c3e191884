package generators

import (
	"fmt"
	"time"

	"hiresight/internal/errors"
	"hiresight/internal/types"
)

const dateLayout = "2006-01-02"

// NewHiringTimeline builds a phased hiring schedule from a generated job
// description and hiring plan. startDate must be YYYY-MM-DD; empty means
// today.
func NewHiringTimeline(jd *types.GeneratedJobDescription, plan *types.HiringPlan, startDate string) (*types.HiringTimeline, error) {
	level := normalizeLevel(jd.Metadata.ExperienceLevel)
	weeks := timelineWeeksByLevel[level]

	start := time.Now()
	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", startDate), err)
		}
		start = parsed
	}

	return &types.HiringTimeline{
		Metadata: types.DocumentMetadata{
			GeneratedAt:     time.Now(),
			Company:         jd.Metadata.Company,
			Role:            jd.Header.Title,
			ExperienceLevel: level,
		},
		StartDate:      start.Format(dateLayout),
		DurationWeeks:  weeks,
		TargetHireDate: addWeeks(start, weeks).Format(dateLayout),
		Phases:         timelinePhases(start, level, plan),
		Milestones:     timelineMilestones(start, weeks),
	}, nil
}

func addWeeks(t time.Time, weeks int) time.Time {
	return t.AddDate(0, 0, weeks*7)
}

func timelinePhases(start time.Time, level string, plan *types.HiringPlan) []types.TimelinePhase {
	var phases []types.TimelinePhase

	prepEnd := addWeeks(start, 1)
	phases = append(phases, types.TimelinePhase{
		Number:        1,
		Name:          "Preparation & Setup",
		StartDate:     start.Format(dateLayout),
		EndDate:       prepEnd.Format(dateLayout),
		DurationWeeks: 1,
		Objectives: []string{
			"Finalize job description and requirements",
			"Set up interview process and rubrics",
			"Brief hiring team and interviewers",
			"Set up job postings and sourcing channels",
		},
		Deliverables: []string{
			"Approved job description",
			"Interview rubrics and questions",
			"Trained interview panel",
			"Active job postings",
		},
		SuccessCriteria: "Ready to begin active sourcing and screening",
	})

	sourcingWeeks := 2
	if level == types.LevelSenior || level == types.LevelLead {
		sourcingWeeks = 3
	}
	sourcingEnd := addWeeks(prepEnd, sourcingWeeks)
	sourcingDeliverables := []string{
		"Candidate pipeline built",
		"Screening calls completed",
		"Candidates advanced to first round",
		"Pipeline dashboard updated weekly",
	}
	if plan != nil {
		sourcingDeliverables = []string{
			fmt.Sprintf("Sourced %d candidates", plan.PipelineGoals["sourced_candidates"]),
			fmt.Sprintf("Completed %d screening calls", plan.PipelineGoals["screening_calls"]),
			fmt.Sprintf("Advanced %d candidates to first round", plan.PipelineGoals["first_round_interviews"]),
			"Pipeline dashboard updated weekly",
		}
	}
	phases = append(phases, types.TimelinePhase{
		Number:        2,
		Name:          "Sourcing & Initial Screening",
		StartDate:     prepEnd.Format(dateLayout),
		EndDate:       sourcingEnd.Format(dateLayout),
		DurationWeeks: sourcingWeeks,
		Objectives: []string{
			"Build strong candidate pipeline",
			"Conduct recruiter screening calls",
			"Identify top candidates for interviews",
			"Engage passive candidates",
		},
		Deliverables:    sourcingDeliverables,
		SuccessCriteria: "Strong pipeline of qualified candidates ready for interviews",
	})

	// first round overlaps the sourcing phase by one week
	firstRoundStart := addWeeks(prepEnd, 1)
	firstRoundWeeks := 3
	if level == types.LevelSenior || level == types.LevelLead {
		firstRoundWeeks = 4
	}
	firstRoundEnd := addWeeks(firstRoundStart, firstRoundWeeks)
	phases = append(phases, types.TimelinePhase{
		Number:        3,
		Name:          "First Round Interviews",
		StartDate:     firstRoundStart.Format(dateLayout),
		EndDate:       firstRoundEnd.Format(dateLayout),
		DurationWeeks: firstRoundWeeks,
		Objectives: []string{
			"Conduct product sense interviews",
			"Conduct execution interviews",
			"Assess technical understanding",
			"Identify finalists",
		},
		Deliverables: []string{
			"All first round interviews completed",
			"Interview feedback submitted",
			"Finalists identified",
			"Debrief sessions held",
		},
		SuccessCriteria: "Strong finalist slate advanced to final rounds",
	})

	finalRoundEnd := addWeeks(firstRoundEnd, 2)
	phases = append(phases, types.TimelinePhase{
		Number:        4,
		Name:          "Final Round Interviews",
		StartDate:     firstRoundEnd.Format(dateLayout),
		EndDate:       finalRoundEnd.Format(dateLayout),
		DurationWeeks: 2,
		Objectives: []string{
			"Conduct leadership/senior stakeholder interviews",
			"Complete reference checks",
			"Hold team debrief and make decisions",
			"Prepare offer packages",
		},
		Deliverables: []string{
			"All final interviews completed",
			"Reference checks completed",
			"Hiring decisions made",
			"Offer approval obtained",
		},
		SuccessCriteria: "Ready to extend offers to top candidate(s)",
	})

	offerEnd := addWeeks(finalRoundEnd, 2)
	phases = append(phases, types.TimelinePhase{
		Number:        5,
		Name:          "Offer & Close",
		StartDate:     finalRoundEnd.Format(dateLayout),
		EndDate:       offerEnd.Format(dateLayout),
		DurationWeeks: 2,
		Objectives: []string{
			"Extend offers to top candidates",
			"Negotiate and finalize offer terms",
			"Obtain offer acceptance",
			"Begin onboarding preparation",
		},
		Deliverables: []string{
			"Offers extended",
			"Offer accepted",
			"Start date confirmed",
			"Onboarding plan ready",
		},
		SuccessCriteria: "Offer accepted and candidate ready to start",
	})

	return phases
}

func timelineMilestones(start time.Time, weeks int) []types.Milestone {
	return []types.Milestone{
		{Name: "Job Posting Live", Date: start.AddDate(0, 0, 3).Format(dateLayout)},
		{Name: "First Candidates Screened", Date: addWeeks(start, 1).Format(dateLayout)},
		{Name: "First Round Interviews Begin", Date: addWeeks(start, 2).Format(dateLayout)},
		{Name: "Finalist Slate Identified", Date: addWeeks(start, weeks*6/10).Format(dateLayout)},
		{Name: "Final Interviews Complete", Date: addWeeks(start, weeks*75/100).Format(dateLayout)},
		{Name: "Offer Extended", Date: addWeeks(start, weeks*85/100).Format(dateLayout)},
		{Name: "Offer Accepted", Date: addWeeks(start, weeks).Format(dateLayout)},
	}
}
