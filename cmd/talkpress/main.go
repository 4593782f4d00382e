// Package main is the entry point for the talkpress comments API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talkpress/internal/cache"
	"talkpress/internal/config"
	"talkpress/internal/database"
	"talkpress/internal/handlers"
	"talkpress/internal/middleware"
	"talkpress/internal/router"
	"talkpress/internal/store"
	"talkpress/internal/token"
)

func main() {
	// Structured logger — text output; level tightens outside development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (bearer token store + aggregate cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize the bearer token store backed by Valkey.
	tokens := token.NewStore(valkeyClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	commentStore := store.NewCommentStore(db)
	reactionStore := store.NewReactionStore(db)

	// Reaction count cache for anonymous readers.
	aggregates := cache.NewAggregateCache(valkeyClient, cache.DefaultAggregateTTL)

	// Handler groups.
	authHandlers := handlers.NewAuth(tokens, userStore)
	commentHandlers := handlers.NewComments(commentStore, articleStore)
	reactionHandlers := handlers.NewReactions(reactionStore, articleStore, aggregates)

	// Rate limiter for mutating routes.
	writeLimiter := middleware.NewRateLimiter(cfg.WriteRateLimit, time.Minute)
	defer writeLimiter.Stop()

	r := router.New(tokens, authHandlers, commentHandlers, reactionHandlers, writeLimiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start serving in a goroutine so we can wait for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an interrupt or termination signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
