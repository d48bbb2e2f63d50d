package config

import "fmt"

const (
	EnvRAGOllamaURL    = "PRIMELEADS_RAG_OLLAMA_URL"
	EnvRAGEmbedModel   = "PRIMELEADS_RAG_EMBED_MODEL"
	EnvRAGDimensions   = "PRIMELEADS_RAG_DIMENSIONS"
	EnvRAGChunkSize    = "PRIMELEADS_RAG_CHUNK_SIZE"
	EnvRAGChunkOverlap = "PRIMELEADS_RAG_CHUNK_OVERLAP"
	EnvRAGTopK         = "PRIMELEADS_RAG_TOP_K"
	EnvRAGDataDir      = "PRIMELEADS_RAG_DATA_DIR"
	EnvRAGBatchSize    = "PRIMELEADS_RAG_BATCH_SIZE"

	EnvRAGTranscribeScans = "PRIMELEADS_RAG_TRANSCRIBE_SCANS"
)

// RAGConfig holds knowledge-base ingestion and retrieval settings.
type RAGConfig struct {
	OllamaURL    string `toml:"ollama_url"`
	EmbedModel   string `toml:"embed_model"`
	Dimensions   int    `toml:"dimensions"`
	ChunkSize    int    `toml:"chunk_size"`
	ChunkOverlap int    `toml:"chunk_overlap"`
	TopK         int    `toml:"top_k"`
	DataDir      string `toml:"data_dir"`
	BatchSize    int    `toml:"batch_size"`

	// TranscribeScans sends PDF pages without a text layer to the vision
	// model during ingestion. Rendering needs ImageMagick on PATH.
	TranscribeScans bool `toml:"transcribe_scans"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RAGConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *RAGConfig) Merge(overlay *RAGConfig) {
	if overlay.OllamaURL != "" {
		c.OllamaURL = overlay.OllamaURL
	}
	if overlay.EmbedModel != "" {
		c.EmbedModel = overlay.EmbedModel
	}
	if overlay.Dimensions != 0 {
		c.Dimensions = overlay.Dimensions
	}
	if overlay.ChunkSize != 0 {
		c.ChunkSize = overlay.ChunkSize
	}
	if overlay.ChunkOverlap != 0 {
		c.ChunkOverlap = overlay.ChunkOverlap
	}
	if overlay.TopK != 0 {
		c.TopK = overlay.TopK
	}
	if overlay.DataDir != "" {
		c.DataDir = overlay.DataDir
	}
	if overlay.BatchSize != 0 {
		c.BatchSize = overlay.BatchSize
	}
	if overlay.TranscribeScans {
		c.TranscribeScans = true
	}
}

func (c *RAGConfig) loadDefaults() {
	if c.OllamaURL == "" {
		c.OllamaURL = "http://localhost:11434"
	}
	if c.EmbedModel == "" {
		c.EmbedModel = "nomic-embed-text"
	}
	if c.Dimensions == 0 {
		c.Dimensions = 768
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = 800
	}
	if c.ChunkOverlap == 0 {
		c.ChunkOverlap = 80
	}
	if c.TopK == 0 {
		c.TopK = 4
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.BatchSize == 0 {
		c.BatchSize = 16
	}
}

func (c *RAGConfig) loadEnv() {
	envString(EnvRAGOllamaURL, &c.OllamaURL)
	envString(EnvRAGEmbedModel, &c.EmbedModel)
	envInt(EnvRAGDimensions, &c.Dimensions)
	envInt(EnvRAGChunkSize, &c.ChunkSize)
	envInt(EnvRAGChunkOverlap, &c.ChunkOverlap)
	envInt(EnvRAGTopK, &c.TopK)
	envString(EnvRAGDataDir, &c.DataDir)
	envInt(EnvRAGBatchSize, &c.BatchSize)
	envBool(EnvRAGTranscribeScans, &c.TranscribeScans)
}

func (c *RAGConfig) validate() error {
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive")
	}
	if c.Dimensions < 1 {
		return fmt.Errorf("dimensions must be positive")
	}
	return nil
}
