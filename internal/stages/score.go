package stages

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/embedding"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/extraction"
	entscore "github.com/ryo-aien/recruiting-screening-assistant/ent/score"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/scoreconfig"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/scoring"
)

// ScoreHandler runs the composite scoring calculation against the
// highest-versioned ScoreConfig and a candidate's extraction and
// embeddings. Re-running it upserts the candidate's single Score row.
type ScoreHandler struct {
	Client *ent.Client
}

func (h *ScoreHandler) Handle(ctx context.Context, candidateID string) error {
	ext, err := h.Client.Extraction.Query().
		Where(extraction.CandidateIDEQ(candidateID)).
		Only(ctx)
	if err != nil {
		return fmt.Errorf("load extraction for candidate %s: %w", candidateID, err)
	}

	cfg, err := h.Client.ScoreConfig.Query().
		Order(ent.Desc(scoreconfig.FieldVersion)).
		First(ctx)
	if err != nil {
		return fmt.Errorf("load score config: %w", err)
	}

	jobReq, err := decodeJobRequirements(ext.JobRequirements)
	if err != nil {
		return err
	}
	profile, err := decodeCandidateProfile(ext.CandidateProfile)
	if err != nil {
		return err
	}
	roleDistance, err := decodeRoleDistance(cfg.RoleDistanceJSON)
	if err != nil {
		return err
	}

	candidateEmbedding, niceEmbeddings, err := h.loadEmbeddings(ctx, candidateID)
	if err != nil {
		return err
	}

	result := scoring.Calculate(scoring.Config{
		Weights:        decodeWeights(cfg.WeightsJSON),
		MustCapEnabled: cfg.MustCapEnabled,
		MustCapValue:   cfg.MustCapValue,
		RoleDistance:   roleDistance,
		NiceTopN:       cfg.NiceTopN,
	}, jobReq, profile, candidateEmbedding, niceEmbeddings)

	existing, err := h.Client.Score.Query().
		Where(entscore.CandidateIDEQ(candidateID)).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		return h.Client.Score.Create().
			SetID(uuid.NewString()).
			SetCandidateID(candidateID).
			SetConfigVersion(cfg.Version).
			SetMustScore(result.MustScore).
			SetYearScore(result.YearScore).
			SetRoleScore(result.RoleScore).
			SetNiceScore(result.NiceScore).
			SetMustGaps(result.MustGaps).
			SetTotalFit0100(result.TotalFit).
			SetHasMustGaps(result.HasMustGaps).
			SetMustCapApplied(result.MustCapApplied).
			Exec(ctx)
	case err != nil:
		return fmt.Errorf("query existing score: %w", err)
	default:
		return existing.Update().
			SetConfigVersion(cfg.Version).
			SetMustScore(result.MustScore).
			SetYearScore(result.YearScore).
			SetRoleScore(result.RoleScore).
			SetNiceScore(result.NiceScore).
			SetMustGaps(result.MustGaps).
			SetTotalFit0100(result.TotalFit).
			SetHasMustGaps(result.HasMustGaps).
			SetMustCapApplied(result.MustCapApplied).
			Exec(ctx)
	}
}

func (h *ScoreHandler) loadEmbeddings(ctx context.Context, candidateID string) ([]float32, []scoring.NamedVector, error) {
	rows, err := h.Client.Embedding.Query().
		Where(embedding.CandidateIDEQ(candidateID)).
		All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load embeddings for candidate %s: %w", candidateID, err)
	}

	var candidateVec []float32
	var nice []scoring.NamedVector
	for _, row := range rows {
		switch row.Kind {
		case embedding.KindCANDIDATESUMMARY:
			candidateVec = row.Vector
		case embedding.KindNICEREQ:
			refID := ""
			if row.RefID != nil {
				refID = *row.RefID
			}
			nice = append(nice, scoring.NamedVector{RefID: refID, Vector: row.Vector})
		}
	}
	return candidateVec, nice, nil
}
