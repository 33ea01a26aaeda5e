package scoring

import "strings"

// Year computes the year-requirement score: for every positive
// year_requirements entry, the per-skill score is min(actual/required, 1)
// if the candidate reports years for that skill (case-insensitive),
// else 0. The overall score is the arithmetic mean across all
// requirements, or 1.0 if there are none.
func Year(job JobRequirements, profile CandidateProfile) float64 {
	if len(job.YearRequirements) == 0 {
		return 1.0
	}

	candidateYears := make(map[string]float64, len(profile.ExperienceYears))
	for k, v := range profile.ExperienceYears {
		candidateYears[strings.ToLower(k)] = v
	}

	var scores []float64
	for skill, required := range job.YearRequirements {
		if required <= 0 {
			continue
		}
		actual, ok := candidateYears[strings.ToLower(skill)]
		if !ok {
			scores = append(scores, 0.0)
			continue
		}
		s := actual / required
		if s > 1.0 {
			s = 1.0
		}
		if s < 0.0 {
			s = 0.0
		}
		scores = append(scores, s)
	}

	if len(scores) == 0 {
		return 1.0
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
