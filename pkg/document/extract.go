package document

import (
	"errors"
	"unicode/utf8"
)

// ErrNoText is returned when an extractor ran successfully but produced no
// usable text (e.g. a scanned PDF without a text layer). Callers must treat
// this as "no usable content" and short-circuit before building an index.
var ErrNoText = errors.New("document contains no extractable text")

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	// ExtractText returns the full text of the document. Implementations
	// return ErrNoText when extraction succeeds but yields nothing usable;
	// they do not return partial-page failures as errors.
	ExtractText(data []byte) (string, error)
}

// PlainText is an Extractor for documents that are already text.
type PlainText struct{}

// NewPlainText creates a plain-text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// ExtractText validates and normalizes raw text bytes.
func (p *PlainText) ExtractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		data = []byte(string([]rune(string(data))))
	}

	text := Normalize(string(data))
	if text == "" {
		return "", ErrNoText
	}

	return text, nil
}

var _ Extractor = (*PlainText)(nil)
