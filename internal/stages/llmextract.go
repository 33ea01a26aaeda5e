package stages

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/extraction"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/llm"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/redact"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/storage"
)

// LLMExtractHandler derives structured job requirements and a
// candidate profile from the job's raw text and the candidate's
// combined resume text, via a JSON-mode chat completion. Re-running it
// overwrites the candidate's single Extraction row in place.
type LLMExtractHandler struct {
	Client   *ent.Client
	Store    storage.Store
	LLM      llm.Client
	Redactor *redact.Redactor
}

// extractionPayload mirrors the JSON schema asked of the model.
type extractionPayload struct {
	JobRequirements  map[string]interface{} `json:"job_requirements"`
	CandidateProfile map[string]interface{} `json:"candidate_profile"`
	Evidence         map[string]interface{} `json:"evidence"`
}

func (h *LLMExtractHandler) Handle(ctx context.Context, candidateID string) error {
	cand, err := h.Client.Candidate.Get(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("load candidate %s: %w", candidateID, err)
	}

	job, err := h.Client.Job.Get(ctx, cand.JobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", cand.JobID, err)
	}

	if cand.CombinedTextURI == nil {
		return fmt.Errorf("no combined text found for candidate %s: text extraction has not run", candidateID)
	}

	raw, err := h.Store.Get(ctx, *cand.CombinedTextURI)
	if err != nil {
		return fmt.Errorf("read combined text for candidate %s: %w", candidateID, err)
	}
	resumeText := string(raw)
	if h.Redactor != nil {
		resumeText = h.Redactor.Redact(resumeText)
	}

	userPrompt := fmt.Sprintf(extractionUserPromptTemplate, job.RawText, resumeText)
	completion, err := h.LLM.ExtractJSON(ctx, extractionSystemPrompt, userPrompt)
	if err != nil {
		return fmt.Errorf("call extraction model: %w", err)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(completion), &payload); err != nil {
		return fmt.Errorf("parse extraction response: %w", err)
	}
	if payload.JobRequirements == nil || payload.CandidateProfile == nil {
		return fmt.Errorf("extraction response is missing job_requirements or candidate_profile")
	}
	if _, err := decodeJobRequirements(payload.JobRequirements); err != nil {
		return fmt.Errorf("validate extraction response: %w", err)
	}
	if _, err := decodeCandidateProfile(payload.CandidateProfile); err != nil {
		return fmt.Errorf("validate extraction response: %w", err)
	}

	existing, err := h.Client.Extraction.Query().
		Where(extraction.CandidateIDEQ(candidateID)).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		return h.Client.Extraction.Create().
			SetID(uuid.NewString()).
			SetCandidateID(candidateID).
			SetJobRequirements(payload.JobRequirements).
			SetCandidateProfile(payload.CandidateProfile).
			SetEvidence(payload.Evidence).
			SetLlmModel(h.LLM.ChatModel()).
			Exec(ctx)
	case err != nil:
		return fmt.Errorf("query existing extraction: %w", err)
	default:
		return existing.Update().
			SetJobRequirements(payload.JobRequirements).
			SetCandidateProfile(payload.CandidateProfile).
			SetEvidence(payload.Evidence).
			SetLlmModel(h.LLM.ChatModel()).
			Exec(ctx)
	}
}
