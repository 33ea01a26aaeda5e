package stages

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/explanation"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/extraction"
	entscore "github.com/ryo-aien/recruiting-screening-assistant/ent/score"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
)

// ExplainHandler generates the natural-language rationale a recruiter
// reads alongside a candidate's score. It is the pipeline's last stage;
// the runtime moves the candidate to DONE once this handler succeeds,
// so the handler itself only needs to persist the Explanation row.
type ExplainHandler struct {
	Client *ent.Client
	LLM    llm.Client
}

type explanationPayload struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
	Unknowns  []string `json:"unknowns"`
	MustGaps  []string `json:"must_gaps"`
}

func (h *ExplainHandler) Handle(ctx context.Context, candidateID string) error {
	ext, err := h.Client.Extraction.Query().
		Where(extraction.CandidateIDEQ(candidateID)).
		Only(ctx)
	if err != nil {
		return fmt.Errorf("load extraction for candidate %s: %w", candidateID, err)
	}

	score, err := h.Client.Score.Query().
		Where(entscore.CandidateIDEQ(candidateID)).
		Only(ctx)
	if err != nil {
		return fmt.Errorf("load score for candidate %s: %w", candidateID, err)
	}

	scores := map[string]interface{}{
		"must_score":      score.MustScore,
		"nice_score":      score.NiceScore,
		"year_score":      score.YearScore,
		"role_score":      score.RoleScore,
		"total_fit_0_100": score.TotalFit0100,
		"must_gaps":       score.MustGaps,
	}

	userPrompt := fmt.Sprintf(explanationUserPromptTemplate,
		mustJSON(ext.JobRequirements),
		mustJSON(ext.CandidateProfile),
		mustJSON(scores),
		mustJSON(ext.Evidence),
	)

	raw, err := h.LLM.ExtractJSON(ctx, explanationSystemPrompt, userPrompt)
	if err != nil {
		return fmt.Errorf("call explanation model: %w", err)
	}

	var payload explanationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("parse explanation response: %w", err)
	}

	existing, err := h.Client.Explanation.Query().
		Where(explanation.CandidateIDEQ(candidateID)).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		return h.Client.Explanation.Create().
			SetID(uuid.NewString()).
			SetCandidateID(candidateID).
			SetSummary(payload.Summary).
			SetStrengths(payload.Strengths).
			SetConcerns(payload.Concerns).
			SetUnknowns(payload.Unknowns).
			SetMustGaps(payload.MustGaps).
			SetLlmModel(h.LLM.ChatModel()).
			Exec(ctx)
	case err != nil:
		return fmt.Errorf("query existing explanation: %w", err)
	default:
		return existing.Update().
			SetSummary(payload.Summary).
			SetStrengths(payload.Strengths).
			SetConcerns(payload.Concerns).
			SetUnknowns(payload.Unknowns).
			SetMustGaps(payload.MustGaps).
			SetLlmModel(h.LLM.ChatModel()).
			Exec(ctx)
	}
}
