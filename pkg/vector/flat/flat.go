// Package flat provides an in-process, brute-force vector driver. It is the
// default index for request-scoped retrieval sessions, where the document
// count is small enough that exact search beats any ANN structure.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ledgerlens/ledgerlens/pkg/vector"
)

// Metric selects the distance function used for scoring.
type Metric string

const (
	// MetricCosine scores by inner product over L2-normalized vectors.
	MetricCosine Metric = "cosine"

	// MetricL2 scores by Euclidean distance, translated to a similarity in
	// (0, 1] via 1/(1+d) so that higher is always more similar.
	MetricL2 Metric = "l2"
)

// Driver is a brute-force in-memory vector index.
type Driver struct {
	mu     sync.RWMutex
	metric Metric
	docs   []vector.Document
	byID   map[string]int
}

// Config holds configuration for the flat driver.
type Config struct {
	// Metric selects the scoring function. Defaults to MetricCosine.
	Metric Metric
}

// NewDriver creates a new flat in-memory vector driver.
func NewDriver(c Config) (*Driver, error) {
	metric := c.Metric
	if metric == "" {
		metric = MetricCosine
	}
	if metric != MetricCosine && metric != MetricL2 {
		return nil, fmt.Errorf("unsupported metric: %s", metric)
	}

	return &Driver{
		metric: metric,
		byID:   make(map[string]int),
	}, nil
}

// Add stores documents with their embeddings. Re-adding an ID replaces it.
func (d *Driver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		if len(d.docs) > 0 && len(doc.Embedding) != len(d.docs[0].Embedding) {
			return fmt.Errorf("%w: got %d, index has %d",
				vector.ErrDimensionMismatch, len(doc.Embedding), len(d.docs[0].Embedding))
		}

		if i, ok := d.byID[doc.ID]; ok {
			d.docs[i] = doc
			continue
		}
		d.byID[doc.ID] = len(d.docs)
		d.docs = append(d.docs, doc)
	}

	return nil
}

// Query finds the topK most similar documents to the given embedding.
func (d *Driver) Query(_ context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.docs) == 0 {
		return nil, vector.ErrEmptyIndex
	}
	if len(embedding) != len(d.docs[0].Embedding) {
		return nil, fmt.Errorf("%w: query has %d, index has %d",
			vector.ErrDimensionMismatch, len(embedding), len(d.docs[0].Embedding))
	}
	if topK <= 0 || topK > len(d.docs) {
		topK = len(d.docs)
	}

	results := make([]vector.QueryResult, 0, len(d.docs))
	for _, doc := range d.docs {
		results = append(results, vector.QueryResult{
			Document: doc,
			Score:    d.score(embedding, doc.Embedding),
		})
	}

	// Descending score, stable tie-break by original chunk position.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkIndex < results[j].ChunkIndex
	})

	return results[:topK], nil
}

// Count reports the number of stored documents.
func (d *Driver) Count(_ context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs), nil
}

// Close releases resources held by the driver.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs = nil
	d.byID = nil
	return nil
}

func (d *Driver) score(query, doc []float32) float32 {
	switch d.metric {
	case MetricL2:
		var sum float64
		for i := range query {
			diff := float64(query[i]) - float64(doc[i])
			sum += diff * diff
		}
		return float32(1.0 / (1.0 + math.Sqrt(sum)))
	default:
		var dot float64
		for i := range query {
			dot += float64(query[i]) * float64(doc[i])
		}
		return float32(dot)
	}
}

var _ vector.Driver = (*Driver)(nil)
