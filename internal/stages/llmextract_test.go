package stages_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/stages"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/storage"
	testdb "github.com/ryo-aien/recruiting-screening-assistant/test/database"
)

const sampleExtractionJSON = `{
  "job_requirements": {
    "must": [{"id": "m1", "text": "5+ years Go", "skill_tags": ["go"]}],
    "nice": [{"id": "n1", "text": "Kubernetes experience", "skill_tags": ["k8s"]}],
    "role_expectation": "IC",
    "year_requirements": {"m1": 5}
  },
  "candidate_profile": {
    "skills": ["go", "postgres"],
    "roles": ["IC"],
    "experience_years": {"m1": 6},
    "highlights": ["Led migration to microservices"],
    "concerns": [],
    "unknowns": []
  },
  "evidence": {
    "job": {"m1": "5+ years of Go experience required"},
    "candidate": {"m1": "6 years building Go services"}
  }
}`

func TestLLMExtractHandler_CreatesThenUpdatesExtraction(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	ctx := context.Background()

	job, err := dbClient.Ent.Job.Create().
		SetID(uuid.NewString()).
		SetTitle("Backend Engineer").
		SetRawText("We need a backend engineer with 5+ years of Go experience.").
		Save(ctx)
	require.NoError(t, err)

	cand, err := dbClient.Ent.Candidate.Create().
		SetID(uuid.NewString()).
		SetJobID(job.ID).
		SetFullName("Ada Lovelace").
		Save(ctx)
	require.NoError(t, err)

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	combinedKey := "text/" + cand.ID + "/combined.txt"
	require.NoError(t, store.Put(ctx, combinedKey, []byte("[RESUME]\n6 years building Go services at scale.")))

	_, err = dbClient.Ent.Candidate.UpdateOneID(cand.ID).
		SetCombinedTextURI(combinedKey).
		Save(ctx)
	require.NoError(t, err)

	mock := &llm.MockClient{ChatResponse: sampleExtractionJSON}
	h := &stages.LLMExtractHandler{Client: dbClient.Ent, Store: store, LLM: mock}

	require.NoError(t, h.Handle(ctx, cand.ID))

	ext, err := dbClient.Ent.Extraction.Query().Only(ctx)
	require.NoError(t, err)
	assert.Equal(t, cand.ID, ext.CandidateID)
	assert.Equal(t, "mock-chat", ext.LlmModel)
	assert.NotEmpty(t, ext.JobRequirements["must"])

	// Re-running the handler must upsert the same row, not create a second.
	require.NoError(t, h.Handle(ctx, cand.ID))
	count, err := dbClient.Ent.Extraction.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLLMExtractHandler_NoCombinedText(t *testing.T) {
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

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	mock := &llm.MockClient{ChatResponse: sampleExtractionJSON}
	h := &stages.LLMExtractHandler{Client: dbClient.Ent, Store: store, LLM: mock}

	err = h.Handle(ctx, cand.ID)
	assert.Error(t, err)
}
