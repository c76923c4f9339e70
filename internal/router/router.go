package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studypal-backend/internal/handlers"
	"studypal-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	documentHandler *handlers.DocumentHandler,
	flashcardHandler *handlers.FlashcardHandler,
	quizHandler *handlers.QuizHandler,
	assistHandler *handlers.AssistHandler,
	dashboardHandler *handlers.DashboardHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Document Routes ────
		r.Route("/documents", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/upload", documentHandler.Upload)
			r.Get("/", documentHandler.List)
			r.Get("/{id}", documentHandler.Get)
			r.Get("/{id}/chunks", documentHandler.GetChunks)
			r.Put("/{id}", documentHandler.Rename)
			r.Delete("/{id}", documentHandler.Delete)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", flashcardHandler.Generate)
			r.Get("/sets", flashcardHandler.ListSets)
			r.Get("/documents/{documentId}", flashcardHandler.GetByDocument)
			r.Delete("/sets/{id}", flashcardHandler.DeleteSet)

			r.Route("/cards", func(r chi.Router) {
				r.Post("/{id}/review", flashcardHandler.Review)
				r.Put("/{id}/star", flashcardHandler.ToggleStar)
			})
		})

		// ──── Quiz Routes ────
		r.Route("/quizzes", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", quizHandler.Generate)
			r.Get("/documents/{documentId}", quizHandler.ListByDocument)
			r.Get("/{id}", quizHandler.Get)
			r.Post("/{id}/submit", quizHandler.Submit)
			r.Get("/{id}/results", quizHandler.Results)
			r.Delete("/{id}", quizHandler.Delete)
		})

		// ──── AI Assist Routes ────
		r.Route("/ai", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/summarize", assistHandler.Summarize)
			r.Post("/explain", assistHandler.Explain)
			r.Post("/chat", assistHandler.Chat)
			r.Get("/chat/{documentId}", assistHandler.ChatHistory)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/recent", dashboardHandler.Recent)
		})
	})

	return r
}
