package generators

import (
	"time"

	"hiresight/internal/types"
)

var totalInterviewTimeByLevel = map[string]string{
	types.LevelEntry:  "3-4 hours",
	types.LevelMid:    "4-5 hours",
	types.LevelSenior: "5-6 hours",
	types.LevelLead:   "6-8 hours",
}

// NewInterviewRubric builds a structured interview guide for a generated
// job description. The technical stage can be disabled and the leadership
// stage is added for Senior and Lead/Principal roles (or when forced on).
func NewInterviewRubric(jd *types.GeneratedJobDescription, cfg types.HiringProcessConfig) *types.InterviewRubric {
	level := normalizeLevel(jd.Metadata.ExperienceLevel)

	stages := []types.InterviewStage{screeningStage()}
	stages = append(stages, productSenseStage(level), executionStage(level))
	if cfg.IncludeTechnical {
		stages = append(stages, technicalStage())
	}
	if cfg.IncludeLeadership || level == types.LevelSenior || level == types.LevelLead {
		stages = append(stages, leadershipStage())
	}
	stages = append(stages, behavioralStage(), finalStage(level))

	for i := range stages {
		stages[i].Number = i + 1
	}

	return &types.InterviewRubric{
		Metadata: types.DocumentMetadata{
			GeneratedAt:     time.Now(),
			Company:         jd.Metadata.Company,
			Role:            jd.Header.Title,
			ExperienceLevel: level,
		},
		TotalTime:    totalInterviewTimeByLevel[level],
		Stages:       stages,
		ScoringGuide: scoringGuide(),
		DecisionRule: "Must have majority Hire or Strong Hire ratings across all interviewers; " +
			"any Strong No Hire triggers a team discussion. Decide within 48 hours of the final interview.",
	}
}

func scoringGuide() []types.ScoringLevel {
	return []types.ScoringLevel{
		{Score: 4, Label: "Strong Hire", Description: "Exceptional candidate. Top 5% of candidates. Multiple areas of excellence. No significant weaknesses."},
		{Score: 3, Label: "Hire", Description: "Strong candidate. Meets all requirements with some areas of strength. Minor weaknesses that are not deal-breakers."},
		{Score: 2, Label: "Maybe", Description: "Borderline candidate. Mixed signals. Has strengths but also concerns. Needs discussion."},
		{Score: 1, Label: "No Hire", Description: "Does not meet bar. Significant gaps or concerns. Would not be successful in role."},
	}
}

func screeningStage() types.InterviewStage {
	return types.InterviewStage{
		Name:        "Recruiter Screening",
		Duration:    "30 minutes",
		Interviewer: "Recruiter",
		Format:      "Phone or Video Call",
		Objectives: []string{
			"Assess basic qualifications and experience",
			"Evaluate communication skills",
			"Gauge interest and motivation",
			"Provide role and company overview",
			"Discuss compensation expectations",
		},
		KeyQuestions: []string{
			"Walk me through your PM experience and key accomplishments",
			"What interests you about this role and our company?",
			"Describe your experience with product roadmap development",
			"Tell me about your experience working with engineering teams",
			"What are your salary expectations?",
		},
		Criteria: []string{
			"Relevant Experience",
			"Communication",
			"Motivation",
		},
		RedFlags: []string{
			"Cannot articulate clear PM experience",
			"Poor communication or unprepared",
			"Compensation expectations significantly misaligned",
			"Negative comments about previous employers",
			"Lacks basic knowledge about the company",
		},
	}
}

func productSenseStage(level string) types.InterviewStage {
	questionsByLevel := map[string][]string{
		types.LevelEntry: {
			"Tell me about a product you love. What makes it great?",
			"How would you improve a popular consumer app?",
			"Walk me through how you would gather user feedback for a new feature",
			"How do you prioritize features when you have limited resources?",
		},
		types.LevelMid: {
			"Tell me about a product you shipped. How did you decide what to build?",
			"How would you improve our product?",
			"Estimate the market size for a product category of your choice",
			"How would you determine if a new feature is successful?",
		},
		types.LevelSenior: {
			"Describe your product vision for our product category. How would you differentiate from competitors?",
			"Walk me through how you would build a product strategy for entering a new market",
			"Tell me about a time you had to pivot product direction. How did you decide?",
			"How do you balance short-term wins with long-term product vision?",
		},
		types.LevelLead: {
			"What is your philosophy on product strategy? How do you develop multi-year product vision?",
			"How would you think about our product portfolio strategy?",
			"Describe a time you had to make a major product bet. How did you decide and what was the outcome?",
			"How do you identify and evaluate new market opportunities?",
		},
	}

	return types.InterviewStage{
		Name:        "Product Sense & Strategy",
		Duration:    "60 minutes",
		Interviewer: "Senior PM or Product Leader",
		Format:      "Video Call or In-Person",
		Objectives: []string{
			"Assess product thinking and intuition",
			"Evaluate strategic thinking ability",
			"Test user empathy and customer focus",
			"Assess creativity and problem-solving",
		},
		KeyQuestions: questionsByLevel[level],
		Criteria: []string{
			"Product Intuition",
			"Strategic Thinking",
			"Structured Problem Solving",
		},
		RedFlags: []string{
			"Jumps to solutions without understanding problem",
			"Focuses only on features without considering outcomes",
			"Cannot explain reasoning behind decisions",
			"Does not consider business viability",
		},
	}
}

func executionStage(level string) types.InterviewStage {
	questionsByLevel := map[string][]string{
		types.LevelEntry: {
			"Walk me through how you would launch a new feature from kickoff to release",
			"How do you write user stories? Show me an example.",
			"What metrics would you track for a feature you recently used?",
			"How would you handle engineering estimates doubling mid-sprint?",
		},
		types.LevelMid: {
			"Tell me about a complex product launch you led. What was your approach?",
			"How do you prioritize items on your product roadmap?",
			"Walk me through your process for defining and tracking success metrics",
			"Describe a time when you had to make trade-offs between speed and quality",
		},
		types.LevelSenior: {
			"Describe your approach to building and managing a product roadmap",
			"Tell me about a time you had to coordinate a complex, cross-functional initiative",
			"Walk me through how you use data to make product decisions",
			"Describe your experience with A/B testing and experimentation",
		},
		types.LevelLead: {
			"How do you think about building and scaling product processes?",
			"Describe your approach to portfolio management across multiple products",
			"How do you build a culture of data-driven decision making?",
			"Tell me about a time you had to drive alignment across executive leadership",
		},
	}

	return types.InterviewStage{
		Name:        "Execution & Analytics",
		Duration:    "60 minutes",
		Interviewer: "PM or Engineering Manager",
		Format:      "Video Call or In-Person",
		Objectives: []string{
			"Assess ability to ship products on time",
			"Evaluate data-driven decision making",
			"Test project management and organizational skills",
			"Assess stakeholder management abilities",
		},
		KeyQuestions: questionsByLevel[level],
		Criteria: []string{
			"Execution Excellence",
			"Data & Analytics",
			"Stakeholder Management",
		},
		RedFlags: []string{
			"Cannot provide examples of shipped products",
			"Vague or no understanding of metrics",
			"Poor project management skills",
			"Blames others for failures",
		},
	}
}

func technicalStage() types.InterviewStage {
	return types.InterviewStage{
		Name:        "Technical Understanding",
		Duration:    "45-60 minutes",
		Interviewer: "Engineering Lead or Technical PM",
		Format:      "Video Call or In-Person",
		Objectives: []string{
			"Assess technical depth and credibility",
			"Evaluate ability to work with engineers",
			"Test understanding of system design concepts",
			"Evaluate technical decision-making",
		},
		KeyQuestions: []string{
			"Explain the technical architecture of a product you've worked on",
			"How do you make technical trade-off decisions?",
			"How would you explain a technical concept to a non-technical stakeholder?",
			"What questions do you ask engineers when scoping a new feature?",
			"How do you evaluate technical debt vs. new features?",
		},
		Criteria: []string{
			"Technical Depth",
			"Engineering Collaboration",
			"Technical Decision Making",
		},
		RedFlags: []string{
			"No understanding of basic technical concepts",
			"Dismissive of technical constraints",
			"Poor relationship with engineering teams",
			"Makes unrealistic technical assumptions",
		},
	}
}

func leadershipStage() types.InterviewStage {
	return types.InterviewStage{
		Name:        "Leadership & Influence",
		Duration:    "60 minutes",
		Interviewer: "Product Leader or Cross-functional Executive",
		Format:      "Video Call or In-Person",
		Objectives: []string{
			"Assess leadership style and effectiveness",
			"Evaluate ability to influence without authority",
			"Test mentorship and people development skills",
			"Evaluate change management abilities",
		},
		KeyQuestions: []string{
			"Tell me about your leadership philosophy",
			"Describe a time you had to influence a decision without having authority",
			"How do you develop and mentor other PMs?",
			"How do you build alignment across senior leadership?",
			"Describe a situation where you had to make an unpopular decision",
		},
		Criteria: []string{
			"Leadership Impact",
			"Influence & Communication",
			"People Development",
		},
		RedFlags: []string{
			"No examples of leadership or influence",
			"Weak executive presence",
			"Does not invest in people development",
			"Avoids conflict or difficult conversations",
		},
	}
}

func behavioralStage() types.InterviewStage {
	return types.InterviewStage{
		Name:        "Behavioral & Cultural Fit",
		Duration:    "45 minutes",
		Interviewer: "Cross-functional Partner (Design, Marketing, Sales, Data)",
		Format:      "Video Call or In-Person",
		Objectives: []string{
			"Assess alignment with company values",
			"Evaluate collaboration style",
			"Test self-awareness and growth mindset",
			"Assess resilience and adaptability",
		},
		KeyQuestions: []string{
			"Tell me about a time you failed. What did you learn?",
			"Describe a situation where you had conflict with a colleague. How did you resolve it?",
			"Tell me about a time you had to adapt to significant change",
			"Tell me about a time you gave difficult feedback to someone",
			"What are you looking for in your next role and why?",
		},
		Criteria: []string{
			"Values Alignment",
			"Growth Mindset",
			"Collaboration",
		},
		RedFlags: []string{
			"Blames others consistently",
			"Not self-aware",
			"Poor attitude or negative energy",
			"Misalignment with core values",
		},
	}
}

func finalStage(level string) types.InterviewStage {
	interviewer := "VP of Product or CTO"
	if level == types.LevelSenior || level == types.LevelLead {
		interviewer = "CEO or CPO"
	}

	return types.InterviewStage{
		Name:        "Final Round - Executive Interview",
		Duration:    "45-60 minutes",
		Interviewer: interviewer,
		Format:      "Video Call or In-Person",
		Objectives: []string{
			"Final assessment of candidate fit",
			"Evaluate strategic thinking at highest level",
			"Executive-level sell of role and company",
			"Address any remaining concerns",
		},
		KeyQuestions: []string{
			"Why are you interested in this role and our company?",
			"Where do you see yourself in 3-5 years?",
			"What do you think our biggest product challenges are?",
			"How would you approach your first 90 days?",
			"What questions do you have for me?",
		},
		Criteria: []string{
			"Strategic Caliber",
			"Motivation & Fit",
		},
		RedFlags: []string{
			"Not well prepared or knowledgeable about company",
			"Lack of strategic thinking",
			"Poor executive communication",
			"Not genuinely interested",
		},
	}
}
