package services

// CalculateMatchScore returns the percentage of reference skills also present
// in the candidate profile, in [0,100]. An empty reference set scores 0:
// there is nothing to match against.
func CalculateMatchScore(candidate, reference SkillProfile) float64 {
	referenceFlat := reference.Flatten()
	if len(referenceFlat) == 0 {
		return 0
	}

	candidateFlat := candidate.Flatten()

	matches := 0
	for skill := range referenceFlat {
		if _, ok := candidateFlat[skill]; ok {
			matches++
		}
	}

	score := float64(matches) / float64(len(referenceFlat)) * 100
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score
}
