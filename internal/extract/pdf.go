package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxExtractedChars bounds how much text a single document contributes,
// keeping combined resume text within LLM context limits.
const maxExtractedChars = 50000

// PDF extracts plain text from PDF content. Pages that fail to parse
// are skipped rather than aborting the whole document; a handful of
// known-bad PDF generators produce unreadable pages inside otherwise
// fine files.
func PDF(content []byte) (string, error) {
	text, err := extractPDFText(content)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("extract: pdf: no text content found")
	}
	return text, nil
}

// extractPDFText recovers from panics raised by ledongthuc/pdf on
// corrupt input (e.g. "zlib: invalid header").
func extractPDFText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("extract: pdf: panic during extraction: %v", r)
		}
	}()

	reader := bytes.NewReader(content)
	r, openErr := pdf.NewReader(reader, int64(len(content)))
	if openErr != nil {
		return "", fmt.Errorf("extract: pdf: open: %w", openErr)
	}

	var sb strings.Builder
	totalPages := r.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			slog.Warn("extract: pdf: skipping unreadable page", "page", i, "error", pageErr)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")

		if sb.Len() > maxExtractedChars {
			break
		}
	}

	result := sb.String()
	if len(result) > maxExtractedChars {
		result = result[:maxExtractedChars]
	}
	return result, nil
}
