package scoring

import "strings"

// NormalizeRole maps common role-title variants onto the closed
// IC/Lead/Manager set. Unrecognized titles pass through unchanged, so
// the role scorer's exact-match fallback (case-insensitive string
// equality) still has a chance to compare them directly.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "ic", "individual contributor", "engineer", "developer":
		return "IC"
	case "lead", "tech lead", "team lead", "senior":
		return "Lead"
	case "manager", "engineering manager", "em", "director":
		return "Manager"
	default:
		return role
	}
}

// Role computes the role-expectation score. A nil expectation scores
// 1.0 (nothing to check); an empty candidate role list scores 0.5
// (unknown, treated neutrally); otherwise the best role_distance
// lookup across the candidate's normalized roles wins, falling back to
// 1.0 on an exact string match the matrix doesn't cover and 0.5 when
// nothing matches at all.
func Role(job JobRequirements, profile CandidateProfile, distance RoleDistance) float64 {
	if job.RoleExpectation == nil || *job.RoleExpectation == "" {
		return 1.0
	}
	if len(profile.Roles) == 0 {
		return 0.5
	}

	expected := NormalizeRole(*job.RoleExpectation)
	normalized := make([]string, len(profile.Roles))
	for i, r := range profile.Roles {
		normalized[i] = NormalizeRole(r)
	}

	best := 0.0
	for _, role := range normalized {
		if row, ok := distance[expected]; ok {
			if s, ok := row[role]; ok {
				if s > best {
					best = s
				}
				continue
			}
		}
		if role == expected {
			best = 1.0
		}
	}

	if best == 0.0 {
		for _, r := range profile.Roles {
			if strings.EqualFold(r, expected) {
				return 1.0
			}
		}
		return 0.5
	}
	return best
}
