// Package stages implements the five StageHandlers the pipeline
// runtime dispatches to: text extraction, LLM extraction, embedding
// generation, score calculation, and explanation generation.
package stages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/document"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/extract"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/storage"
)

// TextExtractHandler converts every uploaded document belonging to a
// candidate into plain text and records where that text landed. A
// document whose content cannot be parsed is skipped with a warning;
// the stage fails only when no document yields text. Every run writes
// new uuid-named text objects and overwrites each document's text_uri,
// so it is safe to retry.
type TextExtractHandler struct {
	Client *ent.Client
	Store  storage.Store
}

func (h *TextExtractHandler) Handle(ctx context.Context, candidateID string) error {
	docs, err := h.Client.Document.Query().
		Where(document.CandidateIDEQ(candidateID)).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found for candidate %s", candidateID)
	}

	var labelled []string
	for _, doc := range docs {
		content, err := h.Store.Get(ctx, doc.RawURI)
		if err != nil {
			return fmt.Errorf("read raw file for document %s: %w", doc.ID, err)
		}

		text, err := extract.Extract(content, doc.Filename)
		if err != nil {
			slog.Warn("skipping document whose text could not be extracted",
				"candidate_id", candidateID, "document_id", doc.ID, "error", err)
			continue
		}

		textKey := fmt.Sprintf("text/%s_%s.txt", candidateID, uuid.NewString())
		if err := h.Store.Put(ctx, textKey, []byte(text)); err != nil {
			return fmt.Errorf("save extracted text for document %s: %w", doc.ID, err)
		}

		if err := h.Client.Document.UpdateOneID(doc.ID).
			SetTextURI(textKey).
			Exec(ctx); err != nil {
			return fmt.Errorf("record text_uri for document %s: %w", doc.ID, err)
		}
		labelled = append(labelled, fmt.Sprintf("[%s]\n%s", doc.DocType, text))
	}

	if len(labelled) == 0 {
		return fmt.Errorf("no text could be extracted from any documents for candidate %s", candidateID)
	}

	combinedKey := fmt.Sprintf("text/%s_%s.txt", candidateID, uuid.NewString())
	combined := strings.Join(labelled, "\n\n---\n\n")
	if err := h.Store.Put(ctx, combinedKey, []byte(combined)); err != nil {
		return fmt.Errorf("save combined text for candidate %s: %w", candidateID, err)
	}

	return h.Client.Candidate.UpdateOneID(candidateID).
		SetCombinedTextURI(combinedKey).
		Exec(ctx)
}
