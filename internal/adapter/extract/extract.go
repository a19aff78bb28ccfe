// Package extract converts uploaded file bytes into plain text.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"docchat/internal/domain"
)

// Extractor dispatches on file extension. Supported: .pdf, .docx, .txt.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".txt":
		return extractTXT(data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8", domain.ErrParseFailure)
	}
	return string(data), nil
}
