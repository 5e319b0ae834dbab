package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFindsSingleAndMultiWordSkills(t *testing.T) {
	extractor := NewSkillExtractor(DefaultSkillTaxonomy())

	profile := extractor.Extract("I use Python daily and study machine learning")

	assert.Contains(t, profile["technical"], "python")
	assert.Contains(t, profile["technical"], "machine learning")
	assert.Empty(t, profile["soft"])
	assert.Empty(t, profile["business"])
}

func TestExtractRespectsWordBoundaries(t *testing.T) {
	extractor := NewSkillExtractor(DefaultSkillTaxonomy())

	profile := extractor.Extract("Expert JavaScript engineer")
	assert.Contains(t, profile["technical"], "javascript")
	assert.NotContains(t, profile["technical"], "java")

	profile = extractor.Extract("Java and JavaScript backend work")
	assert.Contains(t, profile["technical"], "java")
	assert.Contains(t, profile["technical"], "javascript")
}

func TestExtractIsCaseInsensitive(t *testing.T) {
	extractor := NewSkillExtractor(DefaultSkillTaxonomy())

	profile := extractor.Extract("PYTHON, Docker and PostgreSQL")

	assert.Contains(t, profile["technical"], "python")
	assert.Contains(t, profile["technical"], "docker")
	assert.Contains(t, profile["technical"], "postgresql")
}

func TestExtractAgreesOnRawAndNormalizedText(t *testing.T) {
	normalizer, err := NewTextNormalizer()
	require.NoError(t, err)
	extractor := NewSkillExtractor(DefaultSkillTaxonomy())

	raw := "Strong Python, SQL and Docker background."

	fromRaw := extractor.Extract(raw)
	fromNormalized := extractor.Extract(normalizer.Normalize(raw))

	assert.Equal(t, fromRaw["technical"], fromNormalized["technical"])
}

func TestExtractEmptyText(t *testing.T) {
	extractor := NewSkillExtractor(DefaultSkillTaxonomy())

	profile := extractor.Extract("")

	for _, category := range []string{"technical", "soft", "business"} {
		assert.Empty(t, profile[category])
	}
}

func TestExtractAllCategories(t *testing.T) {
	extractor := NewSkillExtractor(DefaultSkillTaxonomy())

	profile := extractor.Extract("python developer with leadership experience in marketing teams")

	assert.Contains(t, profile["technical"], "python")
	assert.Contains(t, profile["soft"], "leadership")
	assert.Contains(t, profile["business"], "marketing")
}
