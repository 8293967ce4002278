package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vocabdeck/vocabdeck/internal/api"
	"github.com/vocabdeck/vocabdeck/internal/auth"
	"github.com/vocabdeck/vocabdeck/internal/config"
	"github.com/vocabdeck/vocabdeck/internal/db"
	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/repository/sqlite"
	"github.com/vocabdeck/vocabdeck/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabDeck Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl=%s", cfg.TokenTTL)
	log.Debug("review_max_retries=%d", cfg.ReviewMaxRetries)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	tagRepo := sqlite.NewTagRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	clock := services.RealClock{}
	userService := services.NewUserService(userRepo, tokens)
	cardService := services.NewCardService(userRepo, cardRepo, clock)
	reviewService := services.NewReviewService(userRepo, cardRepo, reviewRepo, clock, cfg.ReviewMaxRetries)
	tagService := services.NewTagService(userRepo, tagRepo)
	statsService := services.NewStatsService(userRepo, statsRepo, clock)

	srv := api.NewServer(userService, cardService, reviewService, tagService, statsService, tokens)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("VocabDeck Server Stopped")
	log.Info("===========================================")
}
