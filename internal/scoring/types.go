// Package scoring implements the composite fit-scoring engine: four
// independent sub-scorers (must, year, role, nice) combined into a
// single 0-100 integer under a must-cap override rule.
package scoring

// Requirement is one must or nice job requirement extracted by the
// LLM extraction stage.
type Requirement struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	SkillTags []string `json:"skill_tags"`
}

// JobRequirements is the structured job side of an Extraction record.
type JobRequirements struct {
	Must            []Requirement      `json:"must"`
	Nice            []Requirement      `json:"nice"`
	RoleExpectation *string            `json:"role_expectation"`
	YearRequirements map[string]float64 `json:"year_requirements"`
}

// CandidateProfile is the structured candidate side of an Extraction
// record.
type CandidateProfile struct {
	Skills          []string           `json:"skills"`
	Roles           []string           `json:"roles"`
	ExperienceYears map[string]float64 `json:"experience_years"`
	Highlights      []string           `json:"highlights"`
	Concerns        []string           `json:"concerns"`
	Unknowns        []string           `json:"unknowns"`
}

// RoleDistance is a square matrix over the IC/Lead/Manager role set,
// giving the compatibility score between an expected role and an
// actual one.
type RoleDistance map[string]map[string]float64

// DefaultRoleDistance is used when a ScoreConfig carries no matrix.
func DefaultRoleDistance() RoleDistance {
	return RoleDistance{
		"IC":      {"IC": 1.0, "Lead": 0.7, "Manager": 0.3},
		"Lead":    {"IC": 0.7, "Lead": 1.0, "Manager": 0.7},
		"Manager": {"IC": 0.3, "Lead": 0.7, "Manager": 1.0},
	}
}

// Weights are the composite weights applied to each sub-score.
type Weights struct {
	Must float64 `json:"must"`
	Nice float64 `json:"nice"`
	Year float64 `json:"year"`
	Role float64 `json:"role"`
}

// DefaultWeights matches the source system's defaults.
func DefaultWeights() Weights {
	return Weights{Must: 0.45, Nice: 0.20, Year: 0.20, Role: 0.15}
}

// Config bundles every tunable the scoring engine needs, mirroring one
// ScoreConfig row.
type Config struct {
	Weights        Weights
	MustCapEnabled bool
	MustCapValue   float64
	RoleDistance   RoleDistance
	NiceTopN       int
}

// NamedVector pairs an embedding vector with the id of the nice
// requirement it was generated for.
type NamedVector struct {
	RefID  string
	Vector []float32
}

// Result is the full output of one scoring run.
type Result struct {
	MustScore     float64
	YearScore     float64
	RoleScore     float64
	NiceScore     float64
	MustGaps      []string
	TotalFit      int
	HasMustGaps   bool
	MustCapApplied bool
}
