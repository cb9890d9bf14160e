package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string
	DBPath             string
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	APIPort            string

	// MaxChunkSize is the character ceiling for every chunk.
	MaxChunkSize      int
	EmbedBatchSize    int
	IngestConcurrency int

	// SeedDir, when set, is ingested into SeedStack at startup if that stack is empty.
	SeedDir   string
	SeedStack string

	LogLevel    slog.Level
	LogFormat   string // "text" or "json"
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for range 5 {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	llmAPIKey := getEnv("LLM_API_KEY", "")

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          llmAPIKey,
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", llmAPIKey),
		DBPath:             getEnv("DB_PATH", "./data/ragcompare.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "ragcompare"),
		APIPort:            getEnv("API_PORT", "9000"),
		SeedDir:            getEnv("SEED_DIR", ""),
		SeedStack:          getEnv("SEED_STACK", "window"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "")),
	}

	// Must match the output size of the embeddings model. Changing it requires
	// recreating the Qdrant collection.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	if cfg.QdrantVectorSize, err = positiveInt("QDRANT_VECTOR_SIZE", vectorSizeStr); err != nil {
		return nil, err
	}

	if cfg.MaxChunkSize, err = positiveInt("MAX_CHUNK_SIZE", getEnv("MAX_CHUNK_SIZE", "2000")); err != nil {
		return nil, err
	}
	if cfg.EmbedBatchSize, err = positiveInt("EMBED_BATCH_SIZE", getEnv("EMBED_BATCH_SIZE", "32")); err != nil {
		return nil, err
	}
	if cfg.IngestConcurrency, err = positiveInt("INGEST_CONCURRENCY", getEnv("INGEST_CONCURRENCY", "4")); err != nil {
		return nil, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.SeedDir != "" {
		info, err := os.Stat(cfg.SeedDir)
		if err != nil {
			return nil, fmt.Errorf("SEED_DIR: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("SEED_DIR %s is not a directory", cfg.SeedDir)
		}
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the configured format and level.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
