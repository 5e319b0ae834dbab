package services

// SkillTaxonomy is the curated category → skill phrase mapping used for
// keyword extraction. Loaded once at startup and never mutated.
type SkillTaxonomy struct {
	categories []string
	skills     map[string][]string
}

// SkillProfile maps a category to the taxonomy phrases that matched a text.
type SkillProfile map[string][]string

// Flatten returns every matched phrase across all categories as a set.
func (p SkillProfile) Flatten() map[string]struct{} {
	flat := make(map[string]struct{})
	for _, phrases := range p {
		for _, phrase := range phrases {
			flat[phrase] = struct{}{}
		}
	}
	return flat
}

func NewSkillTaxonomy(skills map[string][]string, categoryOrder []string) *SkillTaxonomy {
	copied := make(map[string][]string, len(skills))
	for category, phrases := range skills {
		copied[category] = append([]string(nil), phrases...)
	}

	return &SkillTaxonomy{
		categories: append([]string(nil), categoryOrder...),
		skills:     copied,
	}
}

func (t *SkillTaxonomy) Categories() []string {
	return t.categories
}

func (t *SkillTaxonomy) Skills(category string) []string {
	return t.skills[category]
}

// DefaultSkillTaxonomy returns the built-in taxonomy covering technical,
// soft and business skills.
func DefaultSkillTaxonomy() *SkillTaxonomy {
	return NewSkillTaxonomy(map[string][]string{
		"technical": {
			"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift", "kotlin",
			"react", "angular", "vue", "node.js", "express", "django", "flask", "spring",
			"sql", "nosql", "mongodb", "mysql", "postgresql", "oracle", "firebase",
			"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "github",
			"machine learning", "deep learning", "ai", "data science", "big data",
			"hadoop", "spark", "tableau", "power bi", "excel", "vba",
			"html", "css", "sass", "less", "bootstrap", "tailwind",
			"rest api", "graphql", "microservices", "serverless",
			"linux", "unix", "windows", "macos", "android", "ios",
			"agile", "scrum", "kanban", "jira", "confluence",
		},
		"soft": {
			"communication", "teamwork", "leadership", "problem solving", "critical thinking",
			"time management", "organization", "adaptability", "flexibility", "creativity",
			"work ethic", "interpersonal skills", "emotional intelligence", "conflict resolution",
			"decision making", "stress management", "attention to detail", "customer service",
			"presentation", "negotiation", "persuasion", "mentoring", "coaching",
		},
		"business": {
			"marketing", "sales", "finance", "accounting", "hr", "human resources",
			"project management", "product management", "operations", "strategy",
			"business development", "customer relationship management", "crm",
			"supply chain", "logistics", "procurement", "quality assurance", "qa",
			"business analysis", "data analysis", "market research", "competitive analysis",
			"budgeting", "forecasting", "risk management", "compliance", "legal",
		},
	}, []string{"technical", "soft", "business"})
}
