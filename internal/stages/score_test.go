package stages_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-aien/recruiting-screening-assistant/ent/embedding"
	entscore "github.com/ryo-aien/recruiting-screening-assistant/ent/score"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/stages"
	testdb "github.com/ryo-aien/recruiting-screening-assistant/test/database"
)

func TestScoreHandler_CalculatesAndUpsertsScore(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	ctx := context.Background()

	job, err := dbClient.Ent.Job.Create().
		SetID(uuid.NewString()).
		SetTitle("Backend Engineer").
		SetRawText("Job text").
		Save(ctx)
	require.NoError(t, err)

	cand, err := dbClient.Ent.Candidate.Create().
		SetID(uuid.NewString()).
		SetJobID(job.ID).
		SetFullName("Ada Lovelace").
		Save(ctx)
	require.NoError(t, err)

	jobReq := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{"id": "m1", "text": "5+ years Go", "skill_tags": []interface{}{"go"}},
		},
		"nice": []interface{}{
			map[string]interface{}{"id": "n1", "text": "Kubernetes experience", "skill_tags": []interface{}{"k8s"}},
		},
		"role_expectation":  "IC",
		"year_requirements": map[string]interface{}{"m1": 5.0},
	}
	profile := map[string]interface{}{
		"skills":           []interface{}{"go", "postgres"},
		"roles":            []interface{}{"IC"},
		"experience_years": map[string]interface{}{"m1": 6.0},
		"highlights":       []interface{}{},
		"concerns":         []interface{}{},
		"unknowns":         []interface{}{},
	}

	_, err = dbClient.Ent.Extraction.Create().
		SetID(uuid.NewString()).
		SetCandidateID(cand.ID).
		SetJobRequirements(jobReq).
		SetCandidateProfile(profile).
		SetLlmModel("mock-chat").
		Save(ctx)
	require.NoError(t, err)

	_, err = dbClient.Ent.ScoreConfig.Create().
		SetID(uuid.NewString()).
		SetVersion(1).
		SetWeightsJSON(map[string]float64{"must": 0.45, "nice": 0.20, "year": 0.20, "role": 0.15}).
		SetRoleDistanceJSON(map[string]interface{}{}).
		Save(ctx)
	require.NoError(t, err)

	_, err = dbClient.Ent.Embedding.Create().
		SetID(uuid.NewString()).
		SetCandidateID(cand.ID).
		SetKind(embedding.KindCANDIDATESUMMARY).
		SetVector([]float32{0.1, 0.2, 0.3}).
		SetEmbeddingModel("mock-embedding").
		Save(ctx)
	require.NoError(t, err)

	niceID := "n1"
	_, err = dbClient.Ent.Embedding.Create().
		SetID(uuid.NewString()).
		SetCandidateID(cand.ID).
		SetKind(embedding.KindNICEREQ).
		SetRefID(niceID).
		SetVector([]float32{0.1, 0.2, 0.3}).
		SetEmbeddingModel("mock-embedding").
		Save(ctx)
	require.NoError(t, err)

	h := &stages.ScoreHandler{Client: dbClient.Ent}
	require.NoError(t, h.Handle(ctx, cand.ID))

	score, err := dbClient.Ent.Score.Query().Where(entscore.CandidateIDEQ(cand.ID)).Only(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, score.ConfigVersion)
	assert.GreaterOrEqual(t, score.TotalFit0100, 0)
	assert.LessOrEqual(t, score.TotalFit0100, 100)

	// Re-running upserts rather than duplicating the row.
	require.NoError(t, h.Handle(ctx, cand.ID))
	count, err := dbClient.Ent.Score.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
