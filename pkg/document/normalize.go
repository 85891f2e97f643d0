// Package document provides text extraction and normalization for source
// documents fed into the retrieval pipeline. Extractors turn raw bytes (PDF,
// plain text) into a single string; Normalize flattens that string into the
// canonical form the chunker operates on.
package document

import (
	"strings"
	"unicode"
)

// Normalize collapses all runs of whitespace into single spaces, strips
// non-printable control characters, and trims the result. It is the canonical
// form for all downstream chunking and indexing: Normalize(Normalize(s)) ==
// Normalize(s).
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case unicode.IsControl(r) || r == unicode.ReplacementChar:
			// Drop stray control bytes from PDF extraction.
		default:
			if inSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}
