package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studypal-backend/internal/config"
	"studypal-backend/internal/database"
	"studypal-backend/internal/handlers"
	"studypal-backend/internal/middleware"
	"studypal-backend/internal/repository"
	"studypal-backend/internal/router"
	"studypal-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting StudyPal Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	docRepo := repository.NewDocumentRepo(pool)
	flashcardRepo := repository.NewFlashcardRepo(pool)
	quizRepo := repository.NewQuizRepo(pool)
	chatRepo := repository.NewChatRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiConcurrentReqs, redisClient)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Println("✓ Gemini Flash client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	fileExtractService := services.NewFileExtractService()
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth)
	documentService := services.NewDocumentService(docRepo, flashcardRepo, quizRepo, chatRepo, fileExtractService, cfg.StoragePath)
	flashcardService := services.NewFlashcardService(flashcardRepo, docRepo, geminiService)
	quizService := services.NewQuizService(quizRepo, docRepo, geminiService)
	assistService := services.NewAssistService(chatRepo, docRepo, geminiService)
	dashboardService := services.NewDashboardService(docRepo, flashcardRepo, quizRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	documentHandler := handlers.NewDocumentHandler(documentService, cfg.StoragePath)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
	quizHandler := handlers.NewQuizHandler(quizService)
	assistHandler := handlers.NewAssistHandler(assistService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		documentHandler,
		flashcardHandler,
		quizHandler,
		assistHandler,
		dashboardHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ StudyPal Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
