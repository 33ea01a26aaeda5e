package stages_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-aien/recruiting-screening-assistant/ent/explanation"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/stages"
	testdb "github.com/ryo-aien/recruiting-screening-assistant/test/database"
)

const sampleExplanationJSON = `{
  "summary": "Strong backend candidate with direct Go experience exceeding the requirement.",
  "strengths": ["6 years of Go experience", "Led a microservices migration"],
  "concerns": ["No direct Kubernetes experience mentioned"],
  "unknowns": ["Availability for on-call rotation"],
  "must_gaps": []
}`

func TestExplainHandler_CreatesThenUpdatesExplanation(t *testing.T) {
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

	_, err = dbClient.Ent.Extraction.Create().
		SetID(uuid.NewString()).
		SetCandidateID(cand.ID).
		SetJobRequirements(map[string]interface{}{"must": []interface{}{}, "nice": []interface{}{}}).
		SetCandidateProfile(map[string]interface{}{"skills": []interface{}{"go"}}).
		SetEvidence(map[string]interface{}{}).
		SetLlmModel("mock-chat").
		Save(ctx)
	require.NoError(t, err)

	_, err = dbClient.Ent.Score.Create().
		SetID(uuid.NewString()).
		SetCandidateID(cand.ID).
		SetConfigVersion(1).
		SetMustScore(1).
		SetYearScore(1).
		SetRoleScore(1).
		SetNiceScore(0.5).
		SetTotalFit0100(85).
		SetHasMustGaps(false).
		Save(ctx)
	require.NoError(t, err)

	mock := &llm.MockClient{ChatResponse: sampleExplanationJSON}
	h := &stages.ExplainHandler{Client: dbClient.Ent, LLM: mock}
	require.NoError(t, h.Handle(ctx, cand.ID))

	exp, err := dbClient.Ent.Explanation.Query().Where(explanation.CandidateIDEQ(cand.ID)).Only(ctx)
	require.NoError(t, err)
	assert.Contains(t, exp.Summary, "Go experience")
	assert.Len(t, exp.Strengths, 2)
	assert.Equal(t, "mock-chat", exp.LlmModel)

	require.NoError(t, h.Handle(ctx, cand.ID))
	count, err := dbClient.Ent.Explanation.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
