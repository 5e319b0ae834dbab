package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMatchScoreEmptyReference(t *testing.T) {
	candidate := SkillProfile{"technical": {"python", "sql"}}

	assert.Equal(t, 0.0, CalculateMatchScore(candidate, SkillProfile{}))
	assert.Equal(t, 0.0, CalculateMatchScore(candidate, SkillProfile{"technical": {}}))
}

func TestCalculateMatchScorePartialOverlap(t *testing.T) {
	candidate := SkillProfile{"technical": {"python"}}
	reference := SkillProfile{"technical": {"python", "sql"}}

	assert.Equal(t, 50.0, CalculateMatchScore(candidate, reference))
}

func TestCalculateMatchScoreFullOverlap(t *testing.T) {
	candidate := SkillProfile{
		"technical": {"python", "sql"},
		"soft":      {"leadership"},
	}
	reference := SkillProfile{
		"technical": {"python", "sql"},
		"soft":      {"leadership"},
	}

	assert.Equal(t, 100.0, CalculateMatchScore(candidate, reference))
}

func TestCalculateMatchScoreNoOverlap(t *testing.T) {
	candidate := SkillProfile{"technical": {"java"}}
	reference := SkillProfile{"technical": {"python", "sql"}}

	assert.Equal(t, 0.0, CalculateMatchScore(candidate, reference))
}

func TestCalculateMatchScoreExtraCandidateSkillsDoNotInflate(t *testing.T) {
	candidate := SkillProfile{"technical": {"python", "sql", "docker", "aws", "react"}}
	reference := SkillProfile{"technical": {"python"}}

	assert.Equal(t, 100.0, CalculateMatchScore(candidate, reference))
}

func TestCalculateMatchScoreCrossCategoryCounting(t *testing.T) {
	// Flattening ignores category placement, only phrase identity counts.
	candidate := SkillProfile{"business": {"python"}}
	reference := SkillProfile{"technical": {"python", "sql", "docker"}}

	score := CalculateMatchScore(candidate, reference)
	assert.InDelta(t, 100.0/3.0, score, 0.0001)
}

func TestClassifyScoreThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Success"},
		{70, "Success"},
		{69.9, "Partial Success"},
		{40, "Partial Success"},
		{39.9, "Failure"},
		{0, "Failure"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(ClassifyScore(tt.score)), "score %v", tt.score)
	}
}
