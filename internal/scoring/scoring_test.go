package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestMust_NoRequirements(t *testing.T) {
	score, gaps := Must(JobRequirements{}, CandidateProfile{})
	require.Equal(t, 1.0, score)
	require.Empty(t, gaps)
}

func TestMust_SingleGap(t *testing.T) {
	job := JobRequirements{
		Must: []Requirement{
			{ID: "m1", Text: "Python required", SkillTags: []string{"python"}},
			{ID: "m2", Text: "Go required", SkillTags: []string{"go"}},
		},
	}
	profile := CandidateProfile{Skills: []string{"Python"}}

	score, gaps := Must(job, profile)
	require.Equal(t, 0.5, score)
	require.Equal(t, []string{"Go required"}, gaps)
}

func TestMust_YearShortfallCountsAsGap(t *testing.T) {
	job := JobRequirements{
		Must:             []Requirement{{ID: "m1", Text: "5y Python", SkillTags: []string{"python"}}},
		YearRequirements: map[string]float64{"python": 5},
	}
	profile := CandidateProfile{
		Skills:          []string{"Python"},
		ExperienceYears: map[string]float64{"Python": 2.5},
	}

	score, gaps := Must(job, profile)
	require.Equal(t, 0.0, score)
	require.Equal(t, []string{"5y Python"}, gaps)
}

func TestMust_SubstringMatch(t *testing.T) {
	job := JobRequirements{Must: []Requirement{{ID: "m1", Text: "Kubernetes", SkillTags: []string{"k8s"}}}}
	profile := CandidateProfile{Skills: []string{"k8s-operator"}}

	score, gaps := Must(job, profile)
	require.Equal(t, 1.0, score)
	require.Empty(t, gaps)
}

func TestYear_NoRequirements(t *testing.T) {
	require.Equal(t, 1.0, Year(JobRequirements{}, CandidateProfile{}))
}

func TestYear_Clipping(t *testing.T) {
	job := JobRequirements{YearRequirements: map[string]float64{"python": 5}}
	profile := CandidateProfile{ExperienceYears: map[string]float64{"python": 2.5}}
	require.InDelta(t, 0.5, Year(job, profile), 1e-9)
}

func TestYear_MissingSkillScoresZero(t *testing.T) {
	job := JobRequirements{YearRequirements: map[string]float64{"rust": 3}}
	require.Equal(t, 0.0, Year(job, CandidateProfile{}))
}

func TestRole_NoExpectation(t *testing.T) {
	require.Equal(t, 1.0, Role(JobRequirements{}, CandidateProfile{Roles: []string{"IC"}}, DefaultRoleDistance()))
}

func TestRole_NoCandidateRoles(t *testing.T) {
	job := JobRequirements{RoleExpectation: ptr("Lead")}
	require.Equal(t, 0.5, Role(job, CandidateProfile{}, DefaultRoleDistance()))
}

func TestRole_Adjacency(t *testing.T) {
	job := JobRequirements{RoleExpectation: ptr("Lead")}
	profile := CandidateProfile{Roles: []string{"IC"}}
	require.Equal(t, 0.7, Role(job, profile, DefaultRoleDistance()))
}

func TestRole_ExactMatch(t *testing.T) {
	job := JobRequirements{RoleExpectation: ptr("Manager")}
	profile := CandidateProfile{Roles: []string{"Manager"}}
	require.Equal(t, 1.0, Role(job, profile, DefaultRoleDistance()))
}

func TestNice_NoEmbeddings(t *testing.T) {
	require.Equal(t, 0.0, Nice(nil, nil, 3))
}

func TestNice_PerfectSimilarity(t *testing.T) {
	candidate := []float32{1, 0, 0}
	nice := []NamedVector{{RefID: "n1", Vector: []float32{1, 0, 0}}}
	require.InDelta(t, 1.0, Nice(candidate, nice, 3), 1e-9)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	require.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
}

// S1: perfect match.
func TestCalculate_S1PerfectMatch(t *testing.T) {
	job := JobRequirements{
		Must:             []Requirement{{ID: "m1", Text: "Python", SkillTags: []string{"python"}}, {ID: "m2", Text: "Git", SkillTags: []string{"git"}}},
		YearRequirements: map[string]float64{"python": 3},
		RoleExpectation:  ptr("Lead"),
	}
	profile := CandidateProfile{
		Skills:          []string{"Python", "Git", "AWS"},
		ExperienceYears: map[string]float64{"Python": 5},
		Roles:           []string{"Lead"},
	}
	cfg := Config{
		Weights:        DefaultWeights(),
		MustCapEnabled: true,
		MustCapValue:   20,
		NiceTopN:       3,
	}
	candidateEmbedding := []float32{1, 0}
	niceEmbeddings := []NamedVector{{RefID: "n1", Vector: []float32{1, 0}}}

	result := Calculate(cfg, job, profile, candidateEmbedding, niceEmbeddings)

	require.Equal(t, 1.0, result.MustScore)
	require.Equal(t, 1.0, result.YearScore)
	require.Equal(t, 1.0, result.RoleScore)
	require.InDelta(t, 1.0, result.NiceScore, 1e-9)
	require.Equal(t, 100, result.TotalFit)
	require.Empty(t, result.MustGaps)
}

// S2: single must gap, capped.
func TestCalculate_S2SingleMustGap(t *testing.T) {
	job := JobRequirements{Must: []Requirement{{ID: "m1", Text: "Python", SkillTags: []string{"python"}}, {ID: "m2", Text: "Go", SkillTags: []string{"go"}}}}
	profile := CandidateProfile{Skills: []string{"Python"}}
	cfg := Config{Weights: DefaultWeights(), MustCapEnabled: true, MustCapValue: 20, NiceTopN: 3}

	result := Calculate(cfg, job, profile, nil, nil)

	require.Equal(t, 0.5, result.MustScore)
	require.Equal(t, []string{"Go"}, result.MustGaps)
	require.LessOrEqual(t, result.TotalFit, 20)
	require.True(t, result.MustCapApplied)
}

// S4: role adjacency through the composite path.
func TestCalculate_S4RoleAdjacency(t *testing.T) {
	job := JobRequirements{RoleExpectation: ptr("Lead")}
	profile := CandidateProfile{Roles: []string{"IC"}}
	cfg := Config{Weights: DefaultWeights(), NiceTopN: 3}

	result := Calculate(cfg, job, profile, nil, nil)
	require.Equal(t, 0.7, result.RoleScore)
}

// Invariant: weighted sum holds when there are no must gaps.
func TestCalculate_WeightedSumNoGaps(t *testing.T) {
	job := JobRequirements{}
	profile := CandidateProfile{}
	cfg := Config{Weights: DefaultWeights(), MustCapEnabled: true, MustCapValue: 20, NiceTopN: 3}

	result := Calculate(cfg, job, profile, nil, nil)
	require.False(t, result.HasMustGaps)

	raw := cfg.Weights.Must*result.MustScore + cfg.Weights.Nice*result.NiceScore + cfg.Weights.Year*result.YearScore + cfg.Weights.Role*result.RoleScore
	expected := int(math.Round(raw * 100))
	require.InDelta(t, expected, result.TotalFit, 1)
}

// Invariant: clamping keeps total_fit within [0, 100] across configs.
func TestCalculate_ClampingBounds(t *testing.T) {
	job := JobRequirements{Must: []Requirement{{ID: "m1", Text: "x", SkillTags: []string{"x"}}}}
	profile := CandidateProfile{}
	cfg := Config{Weights: Weights{Must: 2, Nice: 2, Year: 2, Role: 2}, NiceTopN: 3}

	result := Calculate(cfg, job, profile, nil, nil)
	require.GreaterOrEqual(t, result.TotalFit, 0)
	require.LessOrEqual(t, result.TotalFit, 100)
}
