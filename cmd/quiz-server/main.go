package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/api"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/bank"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/cleanup"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/config"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/quiz"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/ratelimit"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting quiz-server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Load questions
	questions, err := bank.Load(cfg.Quiz.QuestionsFile)
	if err != nil {
		slog.Error("failed to load questions", "path", cfg.Quiz.QuestionsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("question bank loaded", "path", cfg.Quiz.QuestionsFile, "questions", questions.Size())

	policy, err := quiz.ParseUndoPolicy(cfg.Quiz.UndoPolicy)
	if err != nil {
		slog.Error("invalid undo policy", "error", err)
		os.Exit(1)
	}

	store := quiz.NewStore(questions, quiz.StoreConfig{
		MaxSessions: cfg.Quiz.MaxSessions,
		UndoPolicy:  policy,
	})

	// Optional rate limiting
	var limiter ratelimit.Limiter
	var redisLimiter *ratelimit.RedisLimiter
	if cfg.Redis.Address != "" {
		initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
		redisLimiter, err = ratelimit.NewRedisLimiter(initCtx, &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		initCancel()
		if err != nil {
			slog.Error("failed to create rate limiter", "error", err)
			os.Exit(1)
		}
		limiter = redisLimiter
		slog.Info("rate limiting enabled",
			"requests", cfg.RateLimit.Requests,
			"window", cfg.RateLimit.Window,
		)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner := cleanup.NewCleaner(store, cfg.Cleanup.Interval, cfg.Cleanup.SessionTTL)
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, store, limiter)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if redisLimiter != nil {
		if err := redisLimiter.Close(); err != nil {
			slog.Error("rate limiter close error", "error", err)
		}
	}

	slog.Info("quiz-server stopped")
}
