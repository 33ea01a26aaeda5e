package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/embedding"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/extraction"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/scoring"
)

// EmbeddingHandler produces the vectors the nice-requirement scorer
// compares: one summarizing the candidate, one per nice-to-have
// requirement. Re-running it discards every prior embedding for the
// candidate first, in the same transaction that writes the new rows,
// so a changed extraction never leaves stale vectors behind.
type EmbeddingHandler struct {
	Client *ent.Client
	LLM    llm.Client
}

func (h *EmbeddingHandler) Handle(ctx context.Context, candidateID string) error {
	ext, err := h.Client.Extraction.Query().
		Where(extraction.CandidateIDEQ(candidateID)).
		Only(ctx)
	if err != nil {
		return fmt.Errorf("load extraction for candidate %s: %w", candidateID, err)
	}

	tx, err := h.Client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin embedding transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	client := tx.Client()

	if _, err := client.Embedding.Delete().
		Where(embedding.CandidateIDEQ(candidateID)).
		Exec(ctx); err != nil {
		return fmt.Errorf("clear existing embeddings: %w", err)
	}

	profile, err := decodeCandidateProfile(ext.CandidateProfile)
	if err != nil {
		return err
	}

	if text := buildCandidateSummaryText(profile); text != "" {
		vec, err := h.LLM.EmbedOne(ctx, text)
		if err != nil {
			return fmt.Errorf("embed candidate summary: %w", err)
		}
		if err := client.Embedding.Create().
			SetID(uuid.NewString()).
			SetCandidateID(candidateID).
			SetKind(embedding.KindCANDIDATESUMMARY).
			SetVector(vec).
			SetEmbeddingModel(h.LLM.EmbeddingModel()).
			Exec(ctx); err != nil {
			return fmt.Errorf("save candidate summary embedding: %w", err)
		}
	}

	jobReq, err := decodeJobRequirements(ext.JobRequirements)
	if err != nil {
		return err
	}

	var texts []string
	var refs []string
	for _, nice := range jobReq.Nice {
		if nice.Text == "" {
			continue
		}
		texts = append(texts, nice.Text)
		refs = append(refs, nice.ID)
	}
	if len(texts) == 0 {
		return tx.Commit()
	}

	vectors, err := h.LLM.EmbedMany(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed nice requirements: %w", err)
	}
	if len(vectors) != len(refs) {
		return fmt.Errorf("embedding count mismatch: got %d vectors for %d nice requirements", len(vectors), len(refs))
	}

	for i, vec := range vectors {
		if err := client.Embedding.Create().
			SetID(uuid.NewString()).
			SetCandidateID(candidateID).
			SetKind(embedding.KindNICEREQ).
			SetRefID(refs[i]).
			SetVector(vec).
			SetEmbeddingModel(h.LLM.EmbeddingModel()).
			Exec(ctx); err != nil {
			return fmt.Errorf("save nice requirement embedding %s: %w", refs[i], err)
		}
	}
	return tx.Commit()
}

// buildCandidateSummaryText joins the parts of a candidate profile
// worth embedding: skills, highlights, then roles, each labelled and
// separated by " | " so the summary reads as one short paragraph.
func buildCandidateSummaryText(profile scoring.CandidateProfile) string {
	var parts []string
	if len(profile.Skills) > 0 {
		parts = append(parts, fmt.Sprintf("Skills: %s", strings.Join(profile.Skills, ", ")))
	}
	if len(profile.Highlights) > 0 {
		parts = append(parts, fmt.Sprintf("Highlights: %s", strings.Join(profile.Highlights, ". ")))
	}
	if len(profile.Roles) > 0 {
		parts = append(parts, fmt.Sprintf("Roles: %s", strings.Join(profile.Roles, ", ")))
	}
	return strings.Join(parts, " | ")
}
