package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"campusmatch/internal/config"
	"campusmatch/internal/handlers"
	"campusmatch/internal/repositories"
	"campusmatch/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	textExtractor := services.NewTextExtractor()

	normalizer, err := services.NewTextNormalizer()
	if err != nil {
		log.Fatalf("❌ Failed to initialize text normalizer: %v", err)
	}

	taxonomy := services.DefaultSkillTaxonomy()
	skillExtractor := services.NewSkillExtractor(taxonomy)
	log.Println("✅ Services initialized successfully")

	// Initialize generation backend
	llmService := services.NewOllamaService(
		cfg.Ollama.URL,
		cfg.Ollama.Model,
		cfg.Ollama.FallbackModel,
		cfg.Ollama.EmbedModel,
		cfg.Ollama.Timeout,
	)
	log.Println("✅ Generation backend initialized successfully")

	// Initialize Qdrant
	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize indexing and retrieval
	chunker := services.NewTextChunker()
	indexer := services.NewIndexerService(
		docRepo,
		chunker,
		llmService,
		vectorStore,
		cfg.Chunking.ChunkSize,
		cfg.Chunking.Overlap,
	)
	retrieval := services.NewRetrievalService(llmService, vectorStore)

	// Initialize orchestrator and document generator
	orchestrator := services.NewJobOrchestrator(
		jobRepo,
		docRepo,
		textExtractor,
		normalizer,
		skillExtractor,
		cfg.Worker.PerStudentDelay,
	)
	docGenerator := services.NewDocumentGenerator(
		jobRepo,
		retrieval,
		llmService,
		cfg.Ollama.MaxTokens,
	)
	log.Println("✅ Orchestrator initialized")

	// Initialize worker
	worker := services.NewWorker(
		jobRepo,
		orchestrator,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		jobRepo,
		storageService,
		textExtractor,
		indexer,
		worker,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo)
	documentHandler := handlers.NewDocumentHandler(jobRepo, docRepo, docGenerator, indexer)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CampusMatch API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check: server plus generation backend reachability
	api.Get("/health", func(c *fiber.Ctx) error {
		modelNames, err := llmService.ListModels(c.Context())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
				"time":   time.Now(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"models": modelNames,
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Get("/job/:id", jobHandler.HandleGetJob)
	api.Post("/documents/generate", documentHandler.HandleGenerateDocument)
	api.Delete("/documents/:id", documentHandler.HandleDeleteDocument)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CampusMatch API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"GET /api/v1/job/:id",
				"POST /api/v1/documents/generate",
				"DELETE /api/v1/documents/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
