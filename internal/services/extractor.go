package services

import (
	"regexp"
	"strings"
)

type SkillExtractor interface {
	Extract(text string) SkillProfile
}

type skillExtractor struct {
	taxonomy *SkillTaxonomy
	patterns map[string][]*regexp.Regexp
}

// NewSkillExtractor compiles one whole-word pattern per taxonomy phrase up
// front, so extraction itself does no compilation.
func NewSkillExtractor(taxonomy *SkillTaxonomy) SkillExtractor {
	patterns := make(map[string][]*regexp.Regexp)
	for _, category := range taxonomy.Categories() {
		skills := taxonomy.Skills(category)
		compiled := make([]*regexp.Regexp, len(skills))
		for i, skill := range skills {
			compiled[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
		}
		patterns[category] = compiled
	}

	return &skillExtractor{
		taxonomy: taxonomy,
		patterns: patterns,
	}
}

// Extract implements SkillExtractor. Matches every taxonomy phrase against
// the lowercased input at word boundaries, so "java" does not fire inside
// "javascript". Multi-word phrases are matched as-is, which is why callers
// pass raw rather than stopword-stripped text when they can.
func (e *skillExtractor) Extract(text string) SkillProfile {
	lowered := strings.ToLower(text)

	profile := make(SkillProfile, len(e.patterns))
	for _, category := range e.taxonomy.Categories() {
		matched := []string{}
		skills := e.taxonomy.Skills(category)
		for i, pattern := range e.patterns[category] {
			if pattern.MatchString(lowered) {
				matched = append(matched, skills[i])
			}
		}
		profile[category] = matched
	}

	return profile
}
