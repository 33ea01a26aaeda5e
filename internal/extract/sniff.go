package extract

import (
	"path/filepath"
	"strings"
)

// FileType identifies a document's content format.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypePDF
	FileTypeDOCX
)

// Sniff identifies a document's type from its leading bytes, falling
// back to the filename extension when the magic bytes are
// inconclusive (e.g. a truncated upload, or a format this package
// doesn't fingerprint).
func Sniff(content []byte, filename string) FileType {
	if t := sniffMagic(content); t != FileTypeUnknown {
		return t
	}
	return sniffExtension(filename)
}

func sniffMagic(content []byte) FileType {
	if len(content) >= 4 && string(content[:4]) == "%PDF" {
		return FileTypePDF
	}
	// .docx is a zip archive; the local file header signature is
	// "PK\x03\x04". This is also true of any zip-based format; every
	// zip is classed as DOCX without consulting the extension, and the
	// DOCX parser rejects archives that lack word/document.xml.
	if len(content) >= 4 && content[0] == 'P' && content[1] == 'K' && content[2] == 0x03 && content[3] == 0x04 {
		return FileTypeDOCX
	}
	return FileTypeUnknown
}

func sniffExtension(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileTypePDF
	case ".docx":
		return FileTypeDOCX
	default:
		return FileTypeUnknown
	}
}

// Extract dispatches to the PDF or DOCX extractor based on Sniff's
// result.
func Extract(content []byte, filename string) (string, error) {
	switch Sniff(content, filename) {
	case FileTypePDF:
		return PDF(content)
	case FileTypeDOCX:
		return DOCX(content)
	default:
		return "", ErrUnsupportedFileType
	}
}
