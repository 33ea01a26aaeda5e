package scoring

import "strings"

// Must computes the must-requirement score: the fraction of must
// requirements the candidate satisfies, plus the ordered text of every
// requirement that isn't. A requirement is satisfied only if a skill
// tag matches the candidate's skills (exactly, or by substring
// containment in either direction) and, for any tag carrying a
// positive year requirement, the candidate's years for that skill meet
// or exceed it.
func Must(job JobRequirements, profile CandidateProfile) (score float64, gaps []string) {
	if len(job.Must) == 0 {
		return 1.0, nil
	}

	candidateSkills := make(map[string]struct{}, len(profile.Skills))
	for _, s := range profile.Skills {
		candidateSkills[strings.ToLower(s)] = struct{}{}
	}

	candidateYears := make(map[string]float64, len(profile.ExperienceYears))
	for k, v := range profile.ExperienceYears {
		candidateYears[strings.ToLower(k)] = v
	}

	satisfied := 0
	for _, req := range job.Must {
		tags := make([]string, len(req.SkillTags))
		for i, t := range req.SkillTags {
			tags[i] = strings.ToLower(t)
		}

		if skillSatisfied(tags, candidateSkills) && yearsSatisfied(tags, job.YearRequirements, candidateYears) {
			satisfied++
		} else {
			gaps = append(gaps, req.Text)
		}
	}

	return float64(satisfied) / float64(len(job.Must)), gaps
}

func skillSatisfied(tags []string, candidateSkills map[string]struct{}) bool {
	for _, tag := range tags {
		if _, ok := candidateSkills[tag]; ok {
			return true
		}
	}
	for _, tag := range tags {
		for skill := range candidateSkills {
			if strings.Contains(skill, tag) || strings.Contains(tag, skill) {
				return true
			}
		}
	}
	return false
}

func yearsSatisfied(tags []string, yearRequirements, candidateYears map[string]float64) bool {
	for _, tag := range tags {
		required, ok := yearRequirements[tag]
		if !ok || required <= 0 {
			continue
		}
		actual, present := candidateYears[tag]
		if !present || actual < required {
			return false
		}
	}
	return true
}
