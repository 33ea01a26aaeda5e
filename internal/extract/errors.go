package extract

import "errors"

// ErrUnsupportedFileType is returned when neither magic-byte sniffing
// nor the filename extension identifies a document's format.
var ErrUnsupportedFileType = errors.New("extract: unsupported file type")
