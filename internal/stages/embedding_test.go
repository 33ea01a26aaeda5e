package stages_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-aien/recruiting-screening-assistant/ent/embedding"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/stages"
	testdb "github.com/ryo-aien/recruiting-screening-assistant/test/database"
)

func TestEmbeddingHandler_GeneratesCandidateAndNiceEmbeddings(t *testing.T) {
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
		"must": []interface{}{},
		"nice": []interface{}{
			map[string]interface{}{"id": "n1", "text": "Kubernetes experience", "skill_tags": []interface{}{"k8s"}},
			map[string]interface{}{"id": "n2", "text": "Terraform experience", "skill_tags": []interface{}{"terraform"}},
		},
		"role_expectation":  "IC",
		"year_requirements": map[string]interface{}{},
	}
	profile := map[string]interface{}{
		"skills":           []interface{}{"go", "postgres"},
		"roles":            []interface{}{"IC"},
		"experience_years": map[string]interface{}{},
		"highlights":       []interface{}{"Led migration to microservices"},
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

	mock := llm.NewMockClient()
	h := &stages.EmbeddingHandler{Client: dbClient.Ent, LLM: mock}
	require.NoError(t, h.Handle(ctx, cand.ID))

	rows, err := dbClient.Ent.Embedding.Query().Where(embedding.CandidateIDEQ(cand.ID)).All(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3) // one candidate summary + two nice requirements

	summaries := 0
	niceRefs := map[string]bool{}
	for _, row := range rows {
		switch row.Kind {
		case embedding.KindCANDIDATESUMMARY:
			summaries++
			assert.Nil(t, row.RefID)
		case embedding.KindNICEREQ:
			require.NotNil(t, row.RefID)
			niceRefs[*row.RefID] = true
		}
	}
	assert.Equal(t, 1, summaries)
	assert.True(t, niceRefs["n1"])
	assert.True(t, niceRefs["n2"])

	// Re-running must discard the prior set, not append to it.
	require.NoError(t, h.Handle(ctx, cand.ID))
	count, err := dbClient.Ent.Embedding.Query().Where(embedding.CandidateIDEQ(cand.ID)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
