package api

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/config"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/quiz"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/ratelimit"
)

// Server represents the HTTP API server
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	store    *quiz.Store
	limiter  ratelimit.Limiter
	validate *validator.Validate
}

// NewServer creates a new API server. limiter may be nil to disable rate limiting.
func NewServer(cfg config.ServerConfig, store *quiz.Store, limiter ratelimit.Limiter) *Server {
	s := &Server{
		config:   cfg,
		store:    store,
		limiter:  limiter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(allowAnyOrigin)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", sessionHeader},
		ExposedHeaders: []string{"X-Request-ID", sessionHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/quiz", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.rateLimitMiddleware)
		}
		r.Use(s.sessionMiddleware)

		r.Post("/start", s.handleStartQuiz)
		r.Get("/question", s.handleGetQuestion)
		r.Post("/answer", s.handleSubmitAnswer)
		r.Get("/results", s.handleGetResults)
		r.Post("/reset", s.handleResetQuiz)

		r.Get("/hint", s.handleGetHint)
		r.Get("/previous", s.handleGetPrevious)
		r.Post("/undo", s.handleUndo)
	})

	if info, err := os.Stat(s.config.FrontendDir); err == nil && info.IsDir() {
		slog.Info("serving frontend", "dir", s.config.FrontendDir)
		r.Handle("/*", staticHandler(s.config.FrontendDir))
	}

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
