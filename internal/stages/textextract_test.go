package stages_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/document"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/stages"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/storage"
	testdb "github.com/ryo-aien/recruiting-screening-assistant/test/database"
)

func newTestCandidate(ctx context.Context, t *testing.T, client *ent.Client) *ent.Candidate {
	t.Helper()
	cand, err := client.Candidate.Create().
		SetID(uuid.NewString()).
		SetJobID(uuid.NewString()).
		SetFullName("Ada Lovelace").
		Save(ctx)
	require.NoError(t, err)
	return cand
}

func TestTextExtractHandler_NoDocuments(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	ctx := context.Background()
	cand := newTestCandidate(ctx, t, dbClient.Ent)

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	h := &stages.TextExtractHandler{Client: dbClient.Ent, Store: store}

	err = h.Handle(ctx, cand.ID)
	assert.Error(t, err)
}

func TestTextExtractHandler_ExtractsAndRecordsTextURI(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	ctx := context.Background()
	cand := newTestCandidate(ctx, t, dbClient.Ent)

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	rawKey := "raw/" + cand.ID + "/resume.docx"
	require.NoError(t, store.Put(ctx, rawKey, buildMinimalDOCX(t, "Experienced backend engineer.")))

	doc, err := dbClient.Ent.Document.Create().
		SetID(uuid.NewString()).
		SetCandidateID(cand.ID).
		SetDocType(document.DocTypeRESUME).
		SetRawURI(rawKey).
		SetFilename("resume.docx").
		Save(ctx)
	require.NoError(t, err)

	h := &stages.TextExtractHandler{Client: dbClient.Ent, Store: store}
	require.NoError(t, h.Handle(ctx, cand.ID))

	updated, err := dbClient.Ent.Document.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.TextURI)

	text, err := store.Get(ctx, *updated.TextURI)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Experienced backend engineer")

	refreshed, err := dbClient.Ent.Candidate.Get(ctx, cand.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.CombinedTextURI)

	combined, err := store.Get(ctx, *refreshed.CombinedTextURI)
	require.NoError(t, err)
	assert.Contains(t, string(combined), "[RESUME]")
	assert.Contains(t, string(combined), "Experienced backend engineer")
}
