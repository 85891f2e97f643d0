// Package chunker splits normalized document text into bounded, ordered
// chunks suitable for embedding. Splitting happens on sentence boundaries:
// sentences accumulate into a chunk until the size limit would be exceeded,
// then a new chunk starts. The limit is a soft target — a single sentence
// longer than the limit is emitted as its own oversized chunk rather than
// being truncated or split mid-sentence.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the default soft size limit in bytes for a chunk.
const DefaultChunkSize = 500

// Chunk is a contiguous span of source text with a stable position index
// within its parent document. Chunks are immutable once created.
type Chunk struct {
	// Index is the zero-based position of the chunk in the document.
	Index int

	// Text is the chunk content.
	Text string
}

// sentenceSplitter matches sentence-terminated spans, consuming the whole
// terminator run so ellipses and "?!" stay with their sentence. Text after
// the last terminator is handled separately as a trailing fragment.
var sentenceSplitter = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Chunker accumulates sentences into chunks up to a soft size limit.
type Chunker struct {
	chunkSize int
}

// New creates a Chunker with the given soft size limit in bytes.
// Non-positive limits fall back to DefaultChunkSize.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{chunkSize: chunkSize}
}

// Chunk splits text into ordered chunks. Empty or whitespace-only input
// yields an empty slice, which is a valid terminal state for callers, not an
// error. The result is deterministic for identical input.
func (c *Chunker) Chunk(text string) []Chunk {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []Chunk
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  current.String(),
		})
		current.Reset()
	}

	for _, sentence := range sentences {
		// +1 accounts for the joining space.
		if current.Len() > 0 && current.Len()+1+len(sentence) > c.chunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	flush()

	return chunks
}

// splitSentences breaks text into trimmed sentences, keeping terminators.
// A trailing fragment without a terminator becomes its own sentence.
func splitSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	matches := sentenceSplitter.FindAllStringIndex(trimmed, -1)
	if len(matches) == 0 {
		return []string{trimmed}
	}

	sentences := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		s := strings.TrimSpace(trimmed[m[0]:m[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	if tail := strings.TrimSpace(trimmed[matches[len(matches)-1][1]:]); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// Texts returns the chunk contents in order. Convenience for batch embedding.
func Texts(chunks []Chunk) []string {
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	return texts
}
