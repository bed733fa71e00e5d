// Package main implements the REST tier of the deck generation service:
// it accepts document submissions, stores job records, enqueues them for
// the worker tier, and serves status queries and deck downloads.
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

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/platform/logger"
	"github.com/deckforge/deckforge/internal/platform/redisbroker"
	"github.com/deckforge/deckforge/internal/service"
	"github.com/deckforge/deckforge/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server.LogLevel)
	logg.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"redis_addr", cfg.Redis.Addr)

	b := redisbroker.New(redisbroker.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = b.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.Ping(pingCtx); err != nil {
		return fmt.Errorf("coordination store unreachable: %w", err)
	}

	jobs := store.NewJobStore(b)
	jobService, err := service.NewJobService(jobs, b, logg)
	if err != nil {
		return fmt.Errorf("failed to create job service: %w", err)
	}

	router := newRouter(jobService, b, cfg, logg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdownCh:
		logg.Info("shutting down server", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logg.Info("server shutdown completed")
	return nil
}
