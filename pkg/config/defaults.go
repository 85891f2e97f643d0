package config

const (
	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0

	defaultAPIListen = ":8080"

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "nomic-embed-text"
	defaultEmbeddingDimensions = 768

	defaultGenerationProvider = "ollama"
	defaultGenerationTarget   = "http://localhost:11434"
	defaultGenerationModel    = "llama3.2"
	defaultGenerationTimeout  = 120

	defaultVectorProvider = "flat"

	defaultStorageProvider = "inmemory"

	defaultEventStreamProvider = "nop"

	defaultChunkSize = 500
	defaultTopK      = 3
	defaultThreshold = 0.5

	defaultMemoryCapacity = 7
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		Generation: GenerationConfig{
			Provider:    defaultGenerationProvider,
			Target:      defaultGenerationTarget,
			Model:       defaultGenerationModel,
			TimeoutSecs: defaultGenerationTimeout,
		},
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
		},
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
		},
		EventStream: EventStreamConfig{
			Provider: defaultEventStreamProvider,
		},
		Retrieval: RetrievalConfig{
			ChunkSize: defaultChunkSize,
			TopK:      defaultTopK,
			Threshold: defaultThreshold,
		},
		Memory: MemoryConfig{
			Capacity: defaultMemoryCapacity,
		},
	}
}
