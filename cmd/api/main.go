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

	"skillalign/resume-matcher/internal/config"
	"skillalign/resume-matcher/internal/handlers"
	"skillalign/resume-matcher/internal/models"
	"skillalign/resume-matcher/internal/repositories"
	"skillalign/resume-matcher/internal/services"
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
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize HuggingFace client
	hfService := services.NewHuggingFaceService(
		cfg.HuggingFace.Token,
		cfg.HuggingFace.SimilarityURL,
		cfg.HuggingFace.ChatURL,
		cfg.HuggingFace.ChatModel,
		cfg.HuggingFace.RequestTimeout,
	)

	// Initialize the resume vector index
	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Build the matching pipeline around the configured strategy
	strategy := services.NewSimilarityStrategy(cfg.Matching, geminiService, hfService)
	ranker := services.NewShortlistRanker(cfg.Matching.ShortlistSize, cfg.Matching.DemoteOverflow)
	matcher := services.NewMatcherService(extractor, strategy, ranker)
	log.Printf("✅ Matcher initialized with %q strategy\n", strategy.Name())

	// Initialize analyzer and worker
	analyzer := services.NewAnalyzerService(analysisRepo, matcher, geminiService)
	worker := services.NewWorker(
		analysisRepo,
		analyzer,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenService)
	jobHandler := handlers.NewJobHandler(jobRepo)
	resumeHandler := handlers.NewResumeHandler(
		jobRepo,
		resumeRepo,
		extractor,
		matcher,
		storageService,
		vectorStore,
		geminiService,
		cfg.Storage.MaxFileSize,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(
		analysisRepo,
		extractor,
		worker,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SkillAlign Resume Matcher API",
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

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.HandleSignup)
	auth.Post("/login", authHandler.HandleLogin)

	// HR endpoints
	hr := api.Group("/jobs", handlers.RequireAuth(tokenService), handlers.RequireRole(models.RoleHR))
	hr.Post("/", jobHandler.HandleCreateJob)
	hr.Get("/", jobHandler.HandleListJobs)
	hr.Post("/:id/resumes", resumeHandler.HandleUploadResumes)
	hr.Get("/:id/shortlist", resumeHandler.HandleShortlist)
	hr.Get("/:id/search", resumeHandler.HandleSearchResumes)

	// Seeker-facing analysis endpoints
	analyze := api.Group("/analyze", handlers.RequireAuth(tokenService))
	analyze.Post("/", analyzeHandler.HandleAnalyze)
	analyze.Get("/:id", analyzeHandler.HandleGetAnalysis)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SkillAlign Resume Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/signup",
				"POST /api/v1/auth/login",
				"POST /api/v1/jobs",
				"POST /api/v1/jobs/:id/resumes",
				"GET /api/v1/jobs/:id/shortlist",
				"GET /api/v1/jobs/:id/search",
				"POST /api/v1/analyze",
				"GET /api/v1/analyze/:id",
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
