package stages

import (
	"encoding/json"
	"fmt"

	"github.com/ryo-aien/recruiting-screening-assistant/internal/scoring"
)

// toMap round-trips a typed value through JSON into the
// map[string]interface{} shape ent's JSON fields store.
func toMap(v any) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal to map: %w", err)
	}
	return m, nil
}

func decodeJobRequirements(m map[string]interface{}) (scoring.JobRequirements, error) {
	var jr scoring.JobRequirements
	if err := remarshal(m, &jr); err != nil {
		return jr, fmt.Errorf("decode job_requirements: %w", err)
	}
	return jr, nil
}

func decodeCandidateProfile(m map[string]interface{}) (scoring.CandidateProfile, error) {
	var cp scoring.CandidateProfile
	if err := remarshal(m, &cp); err != nil {
		return cp, fmt.Errorf("decode candidate_profile: %w", err)
	}
	return cp, nil
}

func decodeWeights(m map[string]float64) scoring.Weights {
	w := scoring.DefaultWeights()
	if v, ok := m["must"]; ok {
		w.Must = v
	}
	if v, ok := m["nice"]; ok {
		w.Nice = v
	}
	if v, ok := m["year"]; ok {
		w.Year = v
	}
	if v, ok := m["role"]; ok {
		w.Role = v
	}
	return w
}

func decodeRoleDistance(m map[string]interface{}) (scoring.RoleDistance, error) {
	var rd scoring.RoleDistance
	if err := remarshal(m, &rd); err != nil {
		return nil, fmt.Errorf("decode role_distance: %w", err)
	}
	if len(rd) == 0 {
		return scoring.DefaultRoleDistance(), nil
	}
	return rd, nil
}

func remarshal(src, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
