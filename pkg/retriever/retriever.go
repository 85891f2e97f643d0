// Package retriever selects the document chunks relevant to a query. It
// embeds the query once, asks the session's vector index for the topK nearest
// neighbors, and keeps only candidates whose similarity meets the relevance
// threshold. The score returned by the index is the single source of truth
// for relevance; candidates are never re-embedded for a second check.
package retriever

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/embeddings"
	"github.com/ledgerlens/ledgerlens/pkg/vector"
)

const (
	// DefaultTopK is the default number of nearest-neighbor candidates.
	DefaultTopK = 3

	// DefaultThreshold is the default minimum cosine similarity for a
	// candidate chunk to be used as context.
	DefaultThreshold float32 = 0.5
)

// ScoredChunk is a retrieved chunk with its similarity score.
type ScoredChunk struct {
	// ChunkIndex is the chunk's stable position in the source document.
	ChunkIndex int

	// Text is the chunk content.
	Text string

	// Score is the cosine similarity against the query (higher = more similar).
	Score float32
}

// Result is the outcome of a retrieval. An empty result is an expected,
// valid outcome — "no relevant context" — signaled by UseContext rather than
// an empty-string sentinel, so it can never be confused with a legitimately
// empty chunk.
type Result struct {
	// Chunks holds the relevant chunks, ordered by descending similarity
	// with ties broken by original chunk position.
	Chunks []ScoredChunk

	// UseContext reports whether any chunk met the relevance threshold.
	UseContext bool
}

// Retriever answers "which chunks matter for this query" for one embedder.
// The embedder must be the same one that produced the index's vectors.
type Retriever struct {
	embedder embeddings.Embedder
	logger   *zap.Logger
}

// New creates a Retriever bound to the given embedder.
func New(embedder embeddings.Embedder, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		logger:   logger,
	}
}

// Retrieve embeds the query, fetches the topK nearest chunks from the index,
// and filters them by threshold. Querying an empty index surfaces
// vector.ErrEmptyIndex — a sequencing violation, not a normal outcome.
func (r *Retriever) Retrieve(ctx context.Context, index vector.Driver, query string, topK int, threshold float32) (*Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmbedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	candidates, err := index.Query(ctx, queryEmbedding, topK)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	chunks := make([]ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		if c.Score < threshold {
			continue
		}
		chunks = append(chunks, ScoredChunk{
			ChunkIndex: c.ChunkIndex,
			Text:       c.Text,
			Score:      c.Score,
		})
	}

	// Drivers return descending scores already; re-establish the ordering
	// contract here so it does not depend on any one driver.
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Score != chunks[j].Score {
			return chunks[i].Score > chunks[j].Score
		}
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	r.logger.Debug("retrieval complete",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Int("relevant", len(chunks)),
		zap.Float32("threshold", threshold),
	)

	return &Result{
		Chunks:     chunks,
		UseContext: len(chunks) > 0,
	}, nil
}
