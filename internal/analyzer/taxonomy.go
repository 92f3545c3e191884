package analyzer

import (
	"os"

	"gopkg.in/yaml.v3"

	"hiresight/internal/errors"
)

// Category is one named group of skill phrases. Category order is
// semantic: a skill appearing in several categories is reported under the
// first one that lists it.
type Category struct {
	Name   string   `yaml:"category"`
	Skills []string `yaml:"skills"`
}

// Taxonomy is an ordered list of skill categories.
type Taxonomy []Category

// DefaultTaxonomy returns the built-in skill taxonomy for product roles.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "product_management", Skills: []string{
			"product strategy", "product vision", "roadmap", "roadmapping",
			"product lifecycle", "product development", "product planning",
			"feature prioritization", "backlog management", "user stories",
			"product metrics", "product analytics", "kpis",
		}},
		{Name: "technical", Skills: []string{
			"sql", "python", "api", "rest", "graphql", "json", "xml",
			"cloud", "aws", "azure", "gcp", "kubernetes", "docker",
			"microservices", "system design", "architecture", "technical specifications",
			"data structures", "algorithms", "database", "nosql",
		}},
		{Name: "analytics", Skills: []string{
			"data analysis", "analytics", "a/b testing", "experimentation",
			"metrics", "kpi", "tableau", "google analytics", "mixpanel",
			"amplitude", "sql", "excel", "statistics", "data-driven",
			"quantitative analysis", "cohort analysis", "funnel analysis",
		}},
		{Name: "design", Skills: []string{
			"ux", "ui", "user experience", "user interface", "wireframing",
			"prototyping", "figma", "sketch", "adobe xd", "invision",
			"user research", "usability testing", "design thinking",
		}},
		{Name: "business", Skills: []string{
			"business strategy", "market analysis", "competitive analysis",
			"go-to-market", "gtm", "pricing", "monetization", "revenue",
			"p&l", "roi", "business case", "financial modeling",
			"market research", "customer segmentation",
		}},
		{Name: "agile", Skills: []string{
			"agile", "scrum", "kanban", "sprint", "jira", "confluence",
			"standup", "retrospective", "sprint planning", "agile methodologies",
		}},
		{Name: "leadership", Skills: []string{
			"stakeholder management", "cross-functional", "leadership",
			"team management", "mentoring", "coaching", "influence",
			"communication", "presentation", "executive communication",
		}},
		{Name: "domain", Skills: []string{
			"saas", "b2b", "b2c", "enterprise", "consumer", "mobile",
			"web", "platform", "marketplace", "e-commerce", "fintech",
			"healthtech", "edtech",
		}},
	}
}

// LoadTaxonomy reads a taxonomy override from a YAML file. The file is a
// sequence of {category, skills} entries so declaration order survives
// decoding.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"cannot read taxonomy file", err).WithContext("path", path)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeTaxonomyInvalid,
			"taxonomy file is not valid YAML", err).WithContext("path", path)
	}

	if len(tax) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeTaxonomyInvalid,
			"taxonomy file defines no categories", nil).WithContext("path", path)
	}
	for _, cat := range tax {
		if cat.Name == "" {
			return nil, errors.NewConfigError(errors.ErrCodeTaxonomyInvalid,
				"taxonomy category is missing a name", nil).WithContext("path", path)
		}
		if len(cat.Skills) == 0 {
			return nil, errors.NewConfigError(errors.ErrCodeTaxonomyInvalid,
				"taxonomy category has no skills", nil).
				WithContext("path", path).
				WithContext("category", cat.Name)
		}
	}

	return tax, nil
}
