package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"docchat/internal/domain"
)

// extractPDF concatenates per-page text in page order, with a page marker
// between pages so chunk boundaries never silently merge unrelated pages.
func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs; convert that into a
	// closed parse failure instead of taking the session down.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrParseFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrParseFailure, i, err)
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n", i)
		b.WriteString(content)
	}
	return b.String(), nil
}
