// Package vector provides interfaces and implementations for vector storage
// and nearest-neighbor search over document chunks.
//
// An index is built once per retrieval session: append-only while the
// document's chunks are added, read-only for queries afterwards, and
// discarded when the response has been produced. Scores are normalized so
// that higher always means more similar, regardless of the backing store's
// native distance metric.
package vector

import "context"

// Document represents a stored chunk with its embedding.
type Document struct {
	// ID is a unique identifier for the document within its index.
	ID string

	// ChunkIndex is the stable position of the chunk in the source document.
	ChunkIndex int

	// Text is the chunk content.
	Text string

	// Embedding is the vector representation of the chunk text.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings. Population is append-only;
	// adding a document with an existing ID replaces it.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding.
	// topK is clamped to the number of stored documents. Querying an index
	// with no documents returns ErrEmptyIndex.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Count reports the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the driver.
	Close() error
}
