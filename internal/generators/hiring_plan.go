package generators

import (
	"fmt"
	"time"

	"hiresight/internal/types"
)

// timelineWeeksByLevel is the expected search duration per experience level.
var timelineWeeksByLevel = map[string]int{
	types.LevelEntry:  6,
	types.LevelMid:    8,
	types.LevelSenior: 10,
	types.LevelLead:   12,
}

// pipeline conversion multipliers, top of funnel to hire
const (
	pipelineSourcedPerHire    = 100
	pipelineScreensPerHire    = 40
	pipelineFirstRoundPerHire = 20
	pipelineFinalRoundPerHire = 8
	pipelineOffersPerHire     = 2
)

// NewHiringPlan builds a hiring strategy document for a generated job
// description. Urgency ("high", "medium", "low") steers the priorities
// and sourcing channel weighting.
func NewHiringPlan(jd *types.GeneratedJobDescription, goals types.HiringGoals) *types.HiringPlan {
	level := normalizeLevel(jd.Metadata.ExperienceLevel)

	headcount := goals.TargetHeadcount
	if headcount < 1 {
		headcount = 1
	}
	urgency := goals.Urgency
	if urgency == "" {
		urgency = "medium"
	}

	weeks := timelineWeeksByLevel[level]

	return &types.HiringPlan{
		Metadata: types.DocumentMetadata{
			GeneratedAt:     time.Now(),
			Company:         jd.Metadata.Company,
			Role:            jd.Header.Title,
			ExperienceLevel: level,
		},
		TargetHeadcount: headcount,
		Urgency:         urgency,
		Overview: fmt.Sprintf("This hiring plan outlines the strategy for hiring %d %s Product Manager(s). "+
			"The plan focuses on attracting top talent through a multi-channel sourcing approach, "+
			"rigorous evaluation process, and competitive compensation packages.", headcount, level),
		KeyPriorities:    prioritiesForUrgency(urgency),
		TargetProfile:    targetProfileForLevel(level),
		SourcingChannels: sourcingChannels(level, urgency),
		PipelineGoals:    pipelineGoals(headcount),
		TimelineWeeks:    weeks,
		Risks:            hiringRisks(level),
	}
}

func prioritiesForUrgency(urgency string) []string {
	switch urgency {
	case "high":
		return []string{
			"Fast-track interview process (target: 3-4 weeks from application to offer)",
			"Leverage employee referrals and recruiter networks",
			"Consider contract-to-hire arrangements for speed",
			"Expedite decision-making with streamlined approval process",
		}
	case "low":
		return []string{
			"Build robust pipeline for future needs",
			"Focus on cultural fit and long-term potential",
			"Engage passive candidates through networking",
			"Invest in employer branding and content marketing",
		}
	default:
		return []string{
			"Balance speed with quality of hire",
			"Build diverse candidate pipeline",
			"Maintain positive candidate experience",
			"Leverage multiple sourcing channels",
		}
	}
}

func targetProfileForLevel(level string) types.CandidateProfile {
	profiles := map[string]types.CandidateProfile{
		types.LevelEntry: {
			Background: []string{
				"Recent graduates with product management internships",
				"Associate product managers looking to step up",
				"Professionals from related fields (consulting, analytics, engineering) transitioning to PM",
				"Candidates with strong analytical and communication skills",
			},
			Experience: []string{
				"0-2 years in product management or related role",
				"Demonstrated passion for products and technology",
				"Experience with data analysis and user research",
			},
			Traits: []string{
				"Quick learner with growth mindset",
				"Strong problem-solving abilities",
				"Excellent communication skills",
				"User-centric thinking",
				"Collaborative team player",
			},
		},
		types.LevelMid: {
			Background: []string{
				"Product managers with proven track record of successful launches",
				"Candidates from similar industry or product domain",
				"Experience with both B2B and/or B2C products",
				"Strong technical understanding and ability to work with engineers",
			},
			Experience: []string{
				"3-5 years in product management",
				"Led multiple product launches or major features",
				"Experience with agile development processes",
				"Data-driven decision making experience",
			},
			Traits: []string{
				"Strategic thinker with execution skills",
				"Strong leadership abilities",
				"Excellent stakeholder management",
				"Customer-obsessed",
				"Results-oriented",
			},
		},
		types.LevelSenior: {
			Background: []string{
				"Senior PMs from top tech companies or successful startups",
				"Candidates with experience scaling products",
				"Track record of driving significant business impact",
				"Experience mentoring junior PMs",
			},
			Experience: []string{
				"6-9 years in product management",
				"Led product strategy for major product lines",
				"Experience with P&L ownership",
				"Built and managed product teams",
			},
			Traits: []string{
				"Visionary leader",
				"Exceptional strategic thinking",
				"Strong executive communication",
				"Proven people development skills",
				"Bias for action",
			},
		},
		types.LevelLead: {
			Background: []string{
				"Senior or Lead PMs from industry-leading companies",
				"Founders or co-founders with product experience",
				"Executives with deep product expertise",
				"Recognized thought leaders in product management",
			},
			Experience: []string{
				"10+ years in product management",
				"Led product organizations or major business units",
				"Experience with company-wide strategic initiatives",
				"Built and scaled product teams and processes",
			},
			Traits: []string{
				"Strategic visionary",
				"Strong executive presence",
				"Proven organizational leadership",
				"Change agent and influencer",
				"Industry expertise",
			},
		},
	}
	return profiles[level]
}

func sourcingChannels(level, urgency string) []types.SourcingChannel {
	agencyPriority := "Low"
	if urgency == "high" {
		agencyPriority = "Medium"
	}

	channels := []types.SourcingChannel{
		{
			Name:     "Employee Referrals",
			Priority: "High",
			Share:    "30%",
			Activities: []string{
				"Launch internal referral campaign with incentives",
				"Brief team on ideal candidate profile",
				"Provide easy referral submission process",
				"Track and acknowledge all referrals within 48 hours",
			},
		},
		{
			Name:     "Direct Sourcing/Outreach",
			Priority: "High",
			Share:    "25%",
			Activities: []string{
				"LinkedIn Recruiter searches with targeted criteria",
				"Engage passive candidates with personalized messages",
				"Leverage GitHub, ProductHunt, and Medium for active PMs",
				"Attend industry events and conferences",
			},
		},
		{
			Name:     "Job Boards",
			Priority: "Medium",
			Share:    "20%",
			Activities: []string{
				"Post on LinkedIn, Indeed, Glassdoor",
				"Use specialized boards: AngelList, ProductHQ, MindTheProduct",
				"Optimize job postings for SEO and discoverability",
				"Monitor and respond to applications within 24 hours",
			},
		},
		{
			Name:     "Recruiting Agencies",
			Priority: agencyPriority,
			Share:    "15%",
			Activities: []string{
				"Partner with 2-3 specialized PM recruiting firms",
				"Provide detailed candidate profile and expectations",
				"Set clear SLAs for candidate submission and feedback",
				"Review agency performance monthly",
			},
		},
	}

	if level == types.LevelEntry {
		channels = append(channels, types.SourcingChannel{
			Name:     "University Recruiting",
			Priority: "Medium",
			Share:    "10%",
			Activities: []string{
				"Target top MBA and CS programs",
				"Attend career fairs and info sessions",
				"Offer PM internship conversion opportunities",
				"Build university brand presence",
			},
		})
	} else {
		channels = append(channels, types.SourcingChannel{
			Name:     "PM Communities",
			Priority: "Medium",
			Share:    "10%",
			Activities: []string{
				"Engage with PM Slack groups and forums",
				"Sponsor/speak at PM meetups and events",
				"Create valuable content to attract candidates",
				"Build relationships with PM influencers",
			},
		})
	}

	return channels
}

func pipelineGoals(headcount int) map[string]int {
	return map[string]int{
		"sourced_candidates":     headcount * pipelineSourcedPerHire,
		"screening_calls":        headcount * pipelineScreensPerHire,
		"first_round_interviews": headcount * pipelineFirstRoundPerHire,
		"final_round_interviews": headcount * pipelineFinalRoundPerHire,
		"offers_extended":        headcount * pipelineOffersPerHire,
		"target_hires":           headcount,
	}
}

func hiringRisks(level string) []types.RiskItem {
	risks := []types.RiskItem{
		{
			Risk:       "Competitive market for PM talent",
			Impact:     "High",
			Mitigation: "Develop strong employer brand, competitive compensation, fast decision-making process, and compelling growth opportunities",
		},
		{
			Risk:       "Extended time to hire leads to losing candidates",
			Impact:     "High",
			Mitigation: "Streamline interview process, set clear timelines, maintain regular candidate communication, expedite internal approvals",
		},
		{
			Risk:       "Insufficient candidate pipeline",
			Impact:     "High",
			Mitigation: "Multi-channel sourcing approach, build talent community, start sourcing before opening is approved, leverage employee networks",
		},
		{
			Risk:       "Poor candidate experience damages employer brand",
			Impact:     "Medium",
			Mitigation: "Timely communication, respectful interview process, gather and act on candidate feedback, personalized interactions",
		},
		{
			Risk:       "Interview panel availability constraints",
			Impact:     "Medium",
			Mitigation: "Block recurring interview time slots, train backup interviewers, use asynchronous assessment tools where appropriate",
		},
		{
			Risk:       "Mis-hire due to rushed process",
			Impact:     "High",
			Mitigation: "Maintain interview standards regardless of urgency, use structured interviews and rubrics, involve multiple interviewers",
		},
		{
			Risk:       "Offer rejections due to compensation",
			Impact:     "Medium",
			Mitigation: "Research market rates, understand candidate expectations early, have flexibility in comp structure, highlight total comp package",
		},
	}

	if level == types.LevelSenior || level == types.LevelLead {
		risks = append(risks, types.RiskItem{
			Risk:       "Limited pool of qualified senior candidates",
			Impact:     "High",
			Mitigation: "Start outreach to passive candidates early, consider candidates from adjacent industries, build relationships over time",
		})
	}

	return risks
}
