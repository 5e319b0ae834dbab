package main

import (
	"context"
	"log"

	"campusmatch/internal/config"
	"campusmatch/internal/repositories"
	"campusmatch/internal/services"
)

// Re-indexes document chunks that were persisted without a vector id, which
// happens when the embedding backend was unreachable during ingestion. Safe
// to run repeatedly.
func main() {
	log.Println("🚀 Starting chunk re-indexing...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	docRepo := repositories.NewDocumentRepository(db)

	llmService := services.NewOllamaService(
		cfg.Ollama.URL,
		cfg.Ollama.Model,
		cfg.Ollama.FallbackModel,
		cfg.Ollama.EmbedModel,
		cfg.Ollama.Timeout,
	)

	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	indexer := services.NewIndexerService(
		docRepo,
		services.NewTextChunker(),
		llmService,
		vectorStore,
		cfg.Chunking.ChunkSize,
		cfg.Chunking.Overlap,
	)

	ctx := context.Background()
	total := 0

	for {
		recovered, err := indexer.ReindexChunks(ctx, 100)
		if err != nil {
			log.Fatalf("❌ Re-indexing failed after %d chunks: %v", total, err)
		}
		if recovered == 0 {
			break
		}
		total += recovered
		log.Printf("📊 Re-indexed %d chunks so far\n", total)
	}

	log.Printf("✅ Re-indexing finished, %d chunks recovered\n", total)
}
