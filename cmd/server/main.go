package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	if err := run(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.Environment, os.Stdout)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.LogError(err, "Failed to close database")
		}
	}()

	quizCache := cache.NewNoopCache()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := pkg.NewRedisClient(ctx, cfg)
		cancel()
		if err != nil {
			return err
		}
		defer redisClient.Close()
		quizCache = cache.NewRedisCache(redisClient, logger.Slog())
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.LogError(err, "Failed to create event publisher, falling back to in-memory publisher")
		eventPublisher = events.NewMockEventPublisher(logger.Slog())
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	quizService := services.NewQuizService(repo.Quiz(), validator.New(), logger.Slog(), services.QuizServiceOptions{
		Cache:     quizCache,
		CacheTTL:  cfg.CacheTTL,
		Publisher: eventPublisher,
	})

	handlerManager := handlers.NewHandlerManager(quizService, repo, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(handlerManager, logger, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("quiz-service listening", "addr", server.Addr, "driver", cfg.DatabaseDriver, "cache", cfg.RedisURL != "", "events", cfg.Events.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down quiz-service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
