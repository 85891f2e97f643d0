// Package build wires the configured providers into a runnable pipeline.
// It is shared by the serve, ask, and summarize commands.
package build

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/config"
	embeddingutils "github.com/ledgerlens/ledgerlens/pkg/embeddings/utils"
	eventstreamutils "github.com/ledgerlens/ledgerlens/pkg/eventstream/utils"
	llmutils "github.com/ledgerlens/ledgerlens/pkg/llm/utils"
	"github.com/ledgerlens/ledgerlens/pkg/memory"
	"github.com/ledgerlens/ledgerlens/pkg/pipeline"
	storageutils "github.com/ledgerlens/ledgerlens/pkg/storage/utils"
	"github.com/ledgerlens/ledgerlens/pkg/vector"
	vectorutils "github.com/ledgerlens/ledgerlens/pkg/vector/utils"
	"github.com/ledgerlens/ledgerlens/pkg/worker"
)

// Result bundles the constructed pipeline with the resources behind it.
type Result struct {
	Pipeline *pipeline.Pipeline
	Pool     *worker.Pool

	cleanups []func()
}

// Close releases everything the build created, newest first.
func (r *Result) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
}

// Pipeline constructs the full pipeline from the config: embedder,
// generator, session-index factory, conversation memory, answer archive,
// event publisher, and the archiving worker pool.
func Pipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Result, error) {
	result := &Result{}

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Dimensions:   int(cfg.Embedding.Dimensions),
		APIKey:       os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	result.cleanups = append(result.cleanups, func() { embedder.Close() })

	generator, err := llmutils.NewGenerator(&llmutils.NewGeneratorOpts{
		ProviderType: cfg.Generation.Provider,
		TargetURL:    cfg.Generation.Target,
		Model:        cfg.Generation.Model,
		APIKey:       os.Getenv("OPENAI_API_KEY"),
		Temperature:  cfg.Generation.Temperature,
		MaxTokens:    cfg.Generation.MaxTokens,
	})
	if err != nil {
		result.Close()
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	result.cleanups = append(result.cleanups, func() { generator.Close() })

	storer, err := storageutils.NewStorageDriver(ctx, &storageutils.NewStorageDriverOpts{
		ProviderType: cfg.Storage.Provider,
		DBPath:       cfg.Storage.SQLitePath,
		ConnStr:      cfg.Storage.PostgresURL,
	})
	if err != nil {
		result.Close()
		return nil, fmt.Errorf("creating storage driver: %w", err)
	}
	result.cleanups = append(result.cleanups, func() { storer.Close() })

	publisher, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
		ProviderType: cfg.EventStream.Provider,
		Brokers:      cfg.EventStream.Brokers,
		Topic:        cfg.EventStream.Topic,
	})
	if err != nil {
		result.Close()
		return nil, fmt.Errorf("creating event publisher: %w", err)
	}
	result.cleanups = append(result.cleanups, func() { publisher.Close() })

	pool, err := worker.NewPool(&worker.Config{
		Driver:    storer,
		Publisher: publisher,
		Logger:    logger,
	})
	if err != nil {
		result.Close()
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	result.Pool = pool

	newIndex := func() (vector.Driver, error) {
		return vectorutils.NewVectorDriver(&vectorutils.NewVectorDriverOpts{
			ProviderType: cfg.VectorStore.Provider,
			TargetURL:    cfg.VectorStore.Target,
			Collection:   cfg.VectorStore.Collection,
			Dimensions:   int(cfg.Embedding.Dimensions),
			Logger:       logger,
		})
	}

	pl, err := pipeline.New(&pipeline.Config{
		Embedder:        embedder,
		Generator:       generator,
		NewIndex:        newIndex,
		Memory:          memory.NewStore(cfg.Memory.Capacity),
		Pool:            pool,
		ChunkSize:       cfg.Retrieval.ChunkSize,
		TopK:            cfg.Retrieval.TopK,
		Threshold:       cfg.Retrieval.Threshold,
		GenerateTimeout: time.Duration(cfg.Generation.TimeoutSecs) * time.Second,
		Logger:          logger,
	})
	if err != nil {
		result.Close()
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}
	result.Pipeline = pl

	return result, nil
}
