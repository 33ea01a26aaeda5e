package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docx (.docx) has no ecosystem Go library in wide use comparable to
// ledongthuc/pdf for PDFs, so this file parses the OOXML directly:
// a .docx is a zip archive, and word/document.xml is a flat XML tree
// of paragraphs and tables.

type wordDocument struct {
	XMLName xml.Name  `xml:"document"`
	Body    wordBody  `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
	Tables     []wordTable     `xml:"tbl"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text string `xml:"t"`
}

type wordTable struct {
	Rows []wordTableRow `xml:"tr"`
}

type wordTableRow struct {
	Cells []wordTableCell `xml:"tc"`
}

type wordTableCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

// DOCX extracts plain text from a .docx file's content. Paragraphs are
// joined with newlines; table rows are flattened to their cells' text
// joined with " | ", one row per line.
func DOCX(content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract: docx: open zip: %w", err)
	}

	var docXML []byte
	for _, f := range reader.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract: docx: open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract: docx: read document.xml: %w", err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("extract: docx: word/document.xml not found")
	}

	// The body mixes <w:p> and <w:tbl> as document-order siblings, but
	// Go's XML unmarshaling into separate slices loses that order. The
	// order doesn't matter for this document's downstream use (resume
	// text is concatenated, not rendered), so paragraphs are emitted
	// before tables rather than threading a custom decoder to preserve
	// interleaving.
	var doc wordDocument
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		return "", fmt.Errorf("extract: docx: parse document.xml: %w", err)
	}

	var sb strings.Builder
	for _, p := range doc.Body.Paragraphs {
		line := paragraphText(p)
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	for _, t := range doc.Body.Tables {
		for _, row := range t.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var cellText strings.Builder
				for _, p := range cell.Paragraphs {
					cellText.WriteString(paragraphText(p))
				}
				if c := strings.TrimSpace(cellText.String()); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) > 0 {
				sb.WriteString(strings.Join(cells, " | "))
				sb.WriteString("\n")
			}
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("extract: docx: no text content found")
	}
	if len(result) > maxExtractedChars {
		result = result[:maxExtractedChars]
	}
	return result, nil
}

func paragraphText(p wordParagraph) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return strings.TrimSpace(sb.String())
}
