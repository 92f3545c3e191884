// Package generators builds hiring documents (job descriptions, hiring
// plans, interview rubrics, timelines) from batch analysis results and
// company-supplied configuration. Generation is deterministic: the same
// inputs always produce the same document apart from timestamps.
package generators

import (
	"fmt"
	"strings"
	"time"

	"hiresight/internal/types"
)

const (
	maxResponsibilitiesFromAnalysis = 3
	maxQualificationsFromAnalysis   = 5
	maxSkillsFromAnalysis           = 15
)

// responsibility templates per experience level
var responsibilityTemplates = map[string][]string{
	types.LevelSenior: {
		"Lead product strategy and vision for key product areas",
		"Own and manage product roadmap, prioritizing features based on business impact",
		"Conduct user research and market analysis to identify opportunities",
		"Work closely with engineering teams to define technical requirements and specifications",
		"Drive go-to-market strategy in collaboration with marketing and sales teams",
		"Define and track key product metrics and success criteria",
		"Present product updates and strategic recommendations to executive leadership",
		"Mentor junior product managers and contribute to PM practice development",
		"Lead cross-functional initiatives and drive alignment across teams",
	},
	types.LevelMid: {
		"Manage product roadmap and feature prioritization for your product area",
		"Gather and analyze user feedback to inform product decisions",
		"Write detailed product requirements and user stories",
		"Collaborate with design and engineering to deliver high-quality products",
		"Conduct competitive analysis and market research",
		"Define success metrics and analyze product performance data",
		"Support go-to-market activities and product launches",
		"Communicate product updates to stakeholders",
		"Contribute to product strategy discussions",
	},
	types.LevelEntry: {
		"Assist in product roadmap planning and feature prioritization",
		"Conduct user research and gather customer feedback",
		"Write user stories and maintain product backlog",
		"Collaborate with engineering and design teams on feature development",
		"Track and report on product metrics and KPIs",
		"Support product launches and go-to-market activities",
		"Participate in user testing and feedback sessions",
		"Contribute to product documentation and specifications",
		"Learn and apply product management best practices",
	},
	types.LevelLead: {
		"Define and drive overall product vision and strategy across multiple product lines",
		"Lead and mentor a team of product managers",
		"Partner with executive leadership on long-term product planning",
		"Drive major cross-functional initiatives and organizational change",
		"Establish product management processes and best practices",
		"Own P&L responsibility and business outcomes for product portfolio",
		"Represent product organization in company-wide strategic discussions",
		"Build relationships with key customers and partners",
		"Evangelize product vision internally and externally",
		"Make data-driven decisions on major product investments and trade-offs",
	},
}

var defaultBenefits = []string{
	"Comprehensive health, dental, and vision insurance",
	"Flexible PTO and paid holidays",
	"401(k) with company match",
	"Professional development budget",
	"Remote work flexibility",
	"Home office stipend",
	"Parental leave",
	"Mental health and wellness programs",
	"Team events and company offsites",
}

// normalizeLevel maps unknown levels to Mid-Level so template lookups
// always resolve.
func normalizeLevel(level string) string {
	switch level {
	case types.LevelEntry, types.LevelMid, types.LevelSenior, types.LevelLead:
		return level
	default:
		return types.LevelMid
	}
}

// NewJobDescription builds a complete job description document from batch
// analysis output and a company profile. The analysis is optional; without
// it the level templates alone drive the content.
func NewJobDescription(analysis *types.AggregatedAnalysis, profile types.CompanyProfile) *types.GeneratedJobDescription {
	level := normalizeLevel(profile.ExperienceLevel)

	company := profile.CompanyName
	if company == "" {
		company = "Your Company"
	}
	department := profile.Department
	if department == "" {
		department = "Product"
	}
	location := profile.Location
	if location == "" {
		location = "Remote"
	}
	employmentType := profile.EmploymentType
	if employmentType == "" {
		employmentType = "Full-Time"
	}

	return &types.GeneratedJobDescription{
		Metadata: types.DocumentMetadata{
			GeneratedAt:     time.Now(),
			Company:         company,
			Department:      department,
			ExperienceLevel: level,
		},
		Header: types.JobHeader{
			Title:      fmt.Sprintf("%s Product Manager", level),
			Company:    company,
			Location:   location,
			Type:       employmentType,
			Department: department,
		},
		Overview:         buildOverview(profile, company),
		Responsibilities: buildResponsibilities(analysis, profile, level),
		Qualifications:   buildQualifications(analysis, profile, level),
		Skills:           buildSkills(analysis, profile),
		Compensation:     buildCompensation(profile),
		Benefits:         buildBenefits(profile),
		HowToApply:       buildHowToApply(profile),
	}
}

func buildOverview(profile types.CompanyProfile, company string) string {
	mission := profile.Mission
	if mission == "" {
		mission = "create innovative solutions"
	}
	productFocus := profile.ProductFocus
	if productFocus == "" {
		productFocus = "cutting-edge products"
	}
	about := profile.About
	if about == "" {
		about = fmt.Sprintf("%s is a leading company focused on %s.", company, mission)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "About %s:\n%s\n\n", company, about)
	b.WriteString("Role Overview:\n")
	b.WriteString("We are seeking a talented Product Manager to join our dynamic team. " +
		"In this role, you will be responsible for driving product strategy, working with " +
		"cross-functional teams, and delivering exceptional products that delight our customers. " +
		"You will own the product roadmap and work closely with engineering, design, marketing, " +
		"and sales to bring innovative solutions to market.\n\n")
	fmt.Fprintf(&b, "This role is perfect for someone who is passionate about %s and wants to "+
		"make a significant impact on our product direction and company growth.", productFocus)
	return b.String()
}

func buildResponsibilities(analysis *types.AggregatedAnalysis, profile types.CompanyProfile, level string) []string {
	responsibilities := append([]string{}, responsibilityTemplates[level]...)
	responsibilities = append(responsibilities, profile.Responsibilities...)

	if analysis != nil {
		joined := strings.ToLower(strings.Join(responsibilities, " "))
		added := 0
		for _, entry := range analysis.CommonResponsibilities {
			if added >= maxResponsibilitiesFromAnalysis {
				break
			}
			if !strings.Contains(joined, strings.ToLower(entry.Value)) {
				responsibilities = append(responsibilities, entry.Value)
				added++
			}
		}
	}

	return responsibilities
}

func buildQualifications(analysis *types.AggregatedAnalysis, profile types.CompanyProfile, level string) types.Qualifications {
	quals := types.Qualifications{
		Required:  append([]string{}, requiredQualificationTemplates[level]...),
		Preferred: []string{},
	}
	quals.Required = append(quals.Required, profile.RequiredQuals...)
	quals.Preferred = append(quals.Preferred, profile.PreferredQuals...)

	if analysis != nil {
		for i, entry := range analysis.CommonQualifications {
			if i >= maxQualificationsFromAnalysis {
				break
			}
			quals.Preferred = append(quals.Preferred, entry.Value)
		}
	}

	return quals
}

var requiredQualificationTemplates = map[string][]string{
	types.LevelEntry: {
		"Bachelor's degree or equivalent practical experience",
		"0-2 years of product management or related experience",
		"Strong analytical and problem-solving skills",
		"Excellent written and verbal communication",
		"Demonstrated passion for products and technology",
	},
	types.LevelMid: {
		"3-5 years of product management experience",
		"Track record of shipping successful products or features",
		"Experience with agile development processes",
		"Strong analytical skills and data-driven decision making",
		"Excellent communication and stakeholder management skills",
	},
	types.LevelSenior: {
		"6-9 years of product management experience",
		"Experience leading product strategy for major product lines",
		"Proven ability to drive cross-functional alignment",
		"Strong technical background and credibility with engineering teams",
		"Experience mentoring and developing other product managers",
	},
	types.LevelLead: {
		"10+ years of product management experience",
		"Experience leading product organizations or major business units",
		"P&L ownership and business outcome accountability",
		"Track record of building and scaling product teams",
		"Executive-level communication and influence",
	},
}

func buildSkills(analysis *types.AggregatedAnalysis, profile types.CompanyProfile) map[string][]string {
	skills := map[string][]string{
		"technical": {
			"Data analysis and metrics-driven decision making",
			"Product roadmap development",
			"Agile/Scrum methodologies",
			"SQL or similar data query languages",
			"A/B testing and experimentation",
			"Analytics tools (e.g., Google Analytics, Mixpanel, Amplitude)",
		},
		"business": {
			"Strategic thinking and product vision",
			"Market and competitive analysis",
			"Go-to-market strategy",
			"Business case development",
			"Pricing and monetization",
			"Financial modeling and P&L management",
		},
		"soft_skills": {
			"Excellent communication and presentation skills",
			"Strong stakeholder management",
			"Leadership and influence without authority",
			"Problem-solving and critical thinking",
			"User empathy and customer focus",
			"Cross-functional collaboration",
		},
	}

	skills["technical"] = append(skills["technical"], profile.RequiredSkills...)

	if analysis != nil {
		for i, entry := range analysis.CommonSkills {
			if i >= maxSkillsFromAnalysis {
				break
			}
			if !skillAlreadyCovered(skills, entry.Value) {
				skills["technical"] = append(skills["technical"], titleCase(entry.Value))
			}
		}
	}

	return skills
}

func skillAlreadyCovered(skills map[string][]string, skill string) bool {
	needle := strings.ToLower(skill)
	for _, category := range skills {
		if strings.Contains(strings.ToLower(strings.Join(category, " ")), needle) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func buildCompensation(profile types.CompanyProfile) types.Compensation {
	comp := types.Compensation{
		SalaryRange: profile.SalaryRange,
		Equity:      profile.Equity,
		Bonus:       profile.Bonus,
	}
	if comp.SalaryRange == "" {
		comp.SalaryRange = "Competitive, based on experience"
	}
	if comp.Equity == "" {
		comp.Equity = "Stock options available"
	}
	if comp.Bonus == "" {
		comp.Bonus = "Performance-based bonus eligible"
	}
	return comp
}

func buildBenefits(profile types.CompanyProfile) []string {
	if len(profile.Benefits) > 0 {
		return profile.Benefits
	}
	return append([]string{}, defaultBenefits...)
}

func buildHowToApply(profile types.CompanyProfile) string {
	if profile.ApplyInstructions != "" {
		return profile.ApplyInstructions
	}
	return "Please submit your resume and a cover letter explaining why you're interested in this role."
}
