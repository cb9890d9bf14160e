package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ragcompare/internal/config"
	"ragcompare/internal/contextutil"
	"ragcompare/internal/handlers"
	"ragcompare/internal/http"
	"ragcompare/internal/indexer"
	"ragcompare/internal/llm"
	"ragcompare/internal/metrics"
	"ragcompare/internal/partition"
	"ragcompare/internal/rag"
	"ragcompare/internal/service"
	"ragcompare/internal/storage"
	"ragcompare/internal/vectorstore"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = contextutil.WithLogger(ctx, logger)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	corpusRepo := storage.NewCorpusRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	defer func() {
		_ = vectorStore.Close()
	}()

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize, indexer.PayloadCorpusID); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	if _, err := embedder.EmbedTexts(ctx, []string{"test"}); err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	m := metrics.New()

	pipeline := indexer.NewPipeline(
		documentRepo,
		chunkRepo,
		embedder,
		vectorStore,
		partition.New(),
		cfg.QdrantCollection,
		cfg.MaxChunkSize,
		cfg.EmbedBatchSize,
		m,
	)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	registry, err := rag.NewRegistry(ctx, corpusRepo, rag.DefaultStacks, rag.Deps{
		Indexer:        pipeline,
		Embedder:       embedder,
		VectorStore:    vectorStore,
		Chunks:         chunkRepo,
		Chat:           llmClient,
		Metrics:        m,
		Collection:     cfg.QdrantCollection,
		EmbeddingModel: cfg.EmbeddingModelName,
	})
	if err != nil {
		log.Fatalf("Failed to initialize stacks: %v", err)
	}
	slog.Info("Stacks initialized", "count", len(registry.Stacks()))

	stackService := service.NewStackService(registry, cfg.IngestConcurrency)

	router := http.NewRouter(&http.Deps{
		StackService: stackService,
		Health:       handlers.NewHealthHandler(vectorStore, db, cfg.QdrantCollection),
		Metrics:      m,
		CORSOrigins:  cfg.CORSOrigins,
	})

	// Seed in the background once the router is ready
	if cfg.SeedDir != "" {
		go func() {
			slog.Info("Starting background seeding", "stack", cfg.SeedStack, "dir", cfg.SeedDir)
			results, err := stackService.Seed(ctx, cfg.SeedStack, cfg.SeedDir)
			if err != nil {
				slog.Error("Seeding completed with errors", "stack", cfg.SeedStack, "error", err)
				return
			}
			slog.Info("Seeding completed", "stack", cfg.SeedStack, "documents", len(results))
		}()
	}

	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
