package scoring

import "math"

// Calculate runs all four sub-scorers and combines them into the
// composite Result, applying the must-cap rule when must_gaps is
// non-empty.
func Calculate(cfg Config, job JobRequirements, profile CandidateProfile, candidateEmbedding []float32, niceEmbeddings []NamedVector) Result {
	mustScore, mustGaps := Must(job, profile)
	yearScore := Year(job, profile)

	distance := cfg.RoleDistance
	if distance == nil {
		distance = DefaultRoleDistance()
	}
	roleScore := Role(job, profile, distance)

	niceScore := Nice(candidateEmbedding, niceEmbeddings, cfg.NiceTopN)

	return compose(cfg, mustScore, niceScore, yearScore, roleScore, mustGaps)
}

func compose(cfg Config, mustScore, niceScore, yearScore, roleScore float64, mustGaps []string) Result {
	raw := cfg.Weights.Must*mustScore + cfg.Weights.Nice*niceScore + cfg.Weights.Year*yearScore + cfg.Weights.Role*roleScore
	total := int(math.Round(raw * 100))

	hasMustGaps := len(mustGaps) > 0
	capApplied := false
	if cfg.MustCapEnabled && hasMustGaps {
		cap := int(cfg.MustCapValue)
		if total > cap {
			total = cap
			capApplied = true
		}
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Result{
		MustScore:      mustScore,
		YearScore:      yearScore,
		RoleScore:      roleScore,
		NiceScore:      niceScore,
		MustGaps:       mustGaps,
		TotalFit:       total,
		HasMustGaps:    hasMustGaps,
		MustCapApplied: capApplied,
	}
}
