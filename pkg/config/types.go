package config

// Config represents the ledgerlens configuration stored as config.toml.
// The TOML layout uses sections for logical grouping.
type Config struct {
	Version     int               `mapstructure:"version"`
	API         APIConfig         `mapstructure:"api"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	VectorStore VectorStoreConfig `mapstructure:"vector_store"`
	Storage     StorageConfig     `mapstructure:"storage"`
	EventStream EventStreamConfig `mapstructure:"eventstream"`
	Retrieval   RetrievalConfig   `mapstructure:"retrieval"`
	Memory      MemoryConfig      `mapstructure:"memory"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `mapstructure:"listen"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `mapstructure:"provider"`
	Target     string `mapstructure:"target"`
	Model      string `mapstructure:"model"`
	Dimensions uint   `mapstructure:"dimensions"`
}

// GenerationConfig holds generation provider settings. The API key is read
// from the environment (OPENAI_API_KEY), never from the config file.
type GenerationConfig struct {
	Provider    string  `mapstructure:"provider"`
	Target      string  `mapstructure:"target"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	Provider   string `mapstructure:"provider"`
	Target     string `mapstructure:"target"`
	Collection string `mapstructure:"collection"`
}

// StorageConfig holds answer archive settings.
type StorageConfig struct {
	Provider    string `mapstructure:"provider"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresURL string `mapstructure:"postgres_url"`
}

// EventStreamConfig holds answer event publishing settings.
type EventStreamConfig struct {
	Provider string   `mapstructure:"provider"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
}

// RetrievalConfig holds chunking and retrieval settings.
type RetrievalConfig struct {
	ChunkSize int     `mapstructure:"chunk_size"`
	TopK      int     `mapstructure:"top_k"`
	Threshold float32 `mapstructure:"threshold"`
}

// MemoryConfig holds conversation memory settings.
type MemoryConfig struct {
	Capacity int `mapstructure:"capacity"`
}
