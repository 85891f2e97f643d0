// Package embeddings provides text embedding capabilities for the retrieval
// pipeline. All providers return L2-normalized vectors so that cosine
// similarity reduces to an inner product everywhere downstream.
//
// Vectors are only comparable when produced by the same provider and model:
// an index built with one embedder must be queried with the same embedder.
package embeddings

import "context"

// Embedder provides text embedding capabilities.
type Embedder interface {
	// Embed converts text into a vector embedding. The returned vector is
	// L2-normalized.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the length of vectors produced by this embedder.
	Dimensions() int

	// Close releases any resources held by the embedder.
	Close() error
}

// EmbedAll embeds every text in order using the given embedder. It fails on
// the first error; partial results are not returned.
func EmbedAll(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}
