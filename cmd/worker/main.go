// Package main implements the worker tier: a pool of dispatch loops
// that claim job ids from the shared queue, run the text-analysis
// pipeline, and write results back to the coordination store.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/pipeline"
	"github.com/deckforge/deckforge/internal/platform/logger"
	"github.com/deckforge/deckforge/internal/platform/redisbroker"
	"github.com/deckforge/deckforge/internal/store"
	"github.com/deckforge/deckforge/internal/worker"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("worker failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server.LogLevel)
	logg.Info("worker configuration loaded",
		"worker_count", cfg.Worker.Count,
		"profile", cfg.Pipeline.Profile,
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

	pl, err := pipeline.New(pipeline.Config{
		Profile:          pipeline.Profile(cfg.Pipeline.Profile),
		TopKeywords:      cfg.Pipeline.TopKeywords,
		TopComplexWords:  cfg.Pipeline.TopComplexWords,
		SummarySentences: cfg.Pipeline.SummarySentences,
	})
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	runner, err := worker.NewRunner(b, store.NewJobStore(b), pl, worker.Config{
		WorkerCount:        cfg.Worker.Count,
		PopTimeout:         time.Duration(cfg.Worker.PopTimeoutSecs) * time.Second,
		BrokerRetryBackoff: time.Duration(cfg.Worker.RetryBackoffSecs) * time.Second,
		LeaseTTL:           time.Duration(cfg.Worker.LeaseTTLSecs) * time.Second,
		ReapInterval:       time.Duration(cfg.Worker.ReapIntervalSecs) * time.Second,
		OutputDir:          cfg.Worker.OutputDir,
	}, logg)
	if err != nil {
		return fmt.Errorf("failed to create dispatch runner: %w", err)
	}

	runner.Start()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownCh
	logg.Info("shutting down worker", "signal", sig.String())

	runner.Stop()
	return nil
}
