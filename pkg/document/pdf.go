package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF is an Extractor for PDF documents. Pages without a text layer are
// skipped rather than failing the whole document, matching the contract that
// unreadable content yields empty text, not an error.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// ExtractText concatenates the text of every page in the PDF.
func (p *PDF) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with broken font maps or no text layer are skipped.
			continue
		}

		b.WriteString(text)
		b.WriteByte(' ')
	}

	text := Normalize(b.String())
	if text == "" {
		return "", ErrNoText
	}

	return text, nil
}

var _ Extractor = (*PDF)(nil)
