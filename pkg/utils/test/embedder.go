package testutils

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/ledgerlens/ledgerlens/pkg/embeddings"
)

// MockEmbedder is a test embedder that returns predictable embeddings
type MockEmbedder struct {
	Embeddings map[string][]float32

	// FailOn causes Embed to return an error when the input text matches
	FailOn string

	// Calls records every text passed to Embed.
	Calls []string
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Embeddings: make(map[string][]float32),
	}
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.Calls = append(m.Calls, text)

	if m.FailOn != "" && text == m.FailOn {
		return nil, fmt.Errorf("mock embedding failure for: %s", text)
	}

	if emb, ok := m.Embeddings[text]; ok {
		return emb, nil
	}

	// Return a default embedding for any text
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *MockEmbedder) Dimensions() int {
	return 3
}

func (m *MockEmbedder) Close() error {
	return nil
}

var _ embeddings.Embedder = (*MockEmbedder)(nil)

// HashEmbedder is a deterministic bag-of-words embedder for end-to-end tests.
// Each word hashes into one of Dim buckets; vectors are L2-normalized, so
// cosine similarity tracks word overlap. It has no semantic knowledge, but
// topically overlapping sentences genuinely score higher than unrelated ones.
type HashEmbedder struct {
	Dim int
}

// NewHashEmbedder creates a HashEmbedder with a 64-bucket vocabulary.
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{Dim: 64}
}

// stopwords are skipped so that short queries score on content words only.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "the": true, "to": true,
	"was": true, "what": true, "which": true,
}

func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.Dim)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?$()\"'")
		if word == "" || stopwords[word] {
			continue
		}
		f := fnv.New32a()
		f.Write([]byte(word))
		vec[f.Sum32()%uint32(h.Dim)]++
	}

	embeddings.L2Normalize(vec)
	return vec, nil
}

func (h *HashEmbedder) Dimensions() int {
	return h.Dim
}

func (h *HashEmbedder) Close() error {
	return nil
}

var _ embeddings.Embedder = (*HashEmbedder)(nil)
