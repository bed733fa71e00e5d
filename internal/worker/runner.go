package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/broker"
	"github.com/deckforge/deckforge/internal/domain"
	"github.com/deckforge/deckforge/internal/pipeline"
	"github.com/deckforge/deckforge/internal/store"
)

// Config holds configuration for the dispatch runner.
type Config struct {
	// WorkerCount determines how many concurrent dispatch loops contend
	// on the shared queue.
	WorkerCount int

	// PopTimeout bounds each blocking dequeue; on timeout the loop spins
	// again without error.
	PopTimeout time.Duration

	// BrokerRetryBackoff is the pause after a transient coordination
	// store error before the loop retries.
	BrokerRetryBackoff time.Duration

	// LeaseTTL is how long a processing claim stays valid without the
	// job reaching a terminal state. It must comfortably exceed the
	// slowest expected document.
	LeaseTTL time.Duration

	// ReapInterval is how often the reaper looks for expired leases.
	// Zero disables the reaper.
	ReapInterval time.Duration

	// OutputDir is where deck CSV artifacts are written.
	OutputDir string
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount:        2,
		PopTimeout:         30 * time.Second,
		BrokerRetryBackoff: 5 * time.Second,
		LeaseTTL:           30 * time.Minute,
		ReapInterval:       5 * time.Minute,
		OutputDir:          os.TempDir(),
	}
}

// Common construction errors.
var (
	ErrNilBroker   = errors.New("broker cannot be nil")
	ErrNilJobStore = errors.New("job store cannot be nil")
	ErrNilPipeline = errors.New("pipeline cannot be nil")
)

// Runner manages a pool of dispatch loops plus the lease reaper. All
// coordination happens through the broker's atomic primitives; after a
// claim, exactly one loop holds processing rights for that job until it
// writes a terminal state.
type Runner struct {
	broker   broker.Broker
	jobs     store.JobStore
	pipeline *pipeline.Pipeline
	cfg      Config
	logger   *slog.Logger

	// token identifies this runner instance on the leases it acquires.
	token string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a Runner. Returns an error if a required dependency
// is nil; a nil logger falls back to slog.Default.
func NewRunner(
	b broker.Broker,
	jobs store.JobStore,
	pl *pipeline.Pipeline,
	cfg Config,
	logger *slog.Logger,
) (*Runner, error) {
	if b == nil {
		return nil, ErrNilBroker
	}
	if jobs == nil {
		return nil, ErrNilJobStore
	}
	if pl == nil {
		return nil, ErrNilPipeline
	}
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = 30 * time.Second
	}
	if cfg.BrokerRetryBackoff <= 0 {
		cfg.BrokerRetryBackoff = 5 * time.Second
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = 30 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		broker:   b,
		jobs:     jobs,
		pipeline: pl,
		cfg:      cfg,
		logger:   logger.With("component", "dispatch_runner"),
		token:    uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start launches the dispatch loops and, if configured, the lease
// reaper.
func (r *Runner) Start() {
	for i := 0; i < r.cfg.WorkerCount; i++ {
		r.wg.Add(1)
		go r.dispatchLoop(i)
	}

	if r.cfg.ReapInterval > 0 {
		r.wg.Add(1)
		go r.reapLoop()
	}

	r.logger.Info("dispatch runner started",
		"worker_count", r.cfg.WorkerCount,
		"pop_timeout", r.cfg.PopTimeout,
		"lease_ttl", r.cfg.LeaseTTL)
}

// Stop cancels all loops and waits for in-flight jobs to finish their
// current dispatch cycle. Claimed jobs run to completion; there is no
// mid-pipeline cancellation.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
	r.logger.Info("dispatch runner stopped")
}

// dispatchLoop continuously claims and processes jobs until the runner
// is stopped. A single bad document never terminates the loop; broker
// outages degrade it to retry-with-backoff.
func (r *Runner) dispatchLoop(id int) {
	defer r.wg.Done()

	logger := r.logger.With("worker_id", id)
	logger.Debug("starting dispatch loop")

	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("stopping dispatch loop")
			return
		default:
		}

		jobID, err := r.broker.BlockingPop(r.ctx, store.JobQueue, r.cfg.PopTimeout)
		if errors.Is(err, broker.ErrPopTimeout) {
			continue
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			logger.Error("failed to pop from job queue, backing off", "error", err)
			r.sleep(r.cfg.BrokerRetryBackoff)
			continue
		}

		id, err := uuid.Parse(jobID)
		if err != nil {
			logger.Warn("discarding malformed job id from queue", "raw_id", jobID, "error", err)
			continue
		}

		r.processJob(id, logger)
	}
}

// processJob drives one claimed job through the state machine: claim,
// pipeline, terminal write-back. Missing or corrupt records are skipped
// since there is nothing to mutate.
func (r *Runner) processJob(jobID uuid.UUID, logger *slog.Logger) {
	ctx := context.Background()
	logger = logger.With("job_id", jobID)

	job, err := r.jobs.Get(ctx, jobID)
	if errors.Is(err, store.ErrJobNotFound) || errors.Is(err, store.ErrCorruptJob) {
		logger.Warn("claimed job has no usable record, skipping", "error", err)
		return
	}
	if err != nil {
		logger.Error("failed to load claimed job, skipping", "error", err)
		return
	}

	if job.Status != domain.JobStatusQueued {
		// A duplicate or stale queue entry; the record owner is elsewhere.
		logger.Warn("claimed job is not queued, skipping", "status", job.Status)
		return
	}

	if err := job.MarkProcessing(time.Now()); err != nil {
		logger.Error("failed to transition job to processing", "error", err)
		return
	}
	if err := r.jobs.Save(ctx, job); err != nil {
		logger.Error("failed to persist processing status", "error", err)
		return
	}
	if err := r.jobs.AcquireLease(ctx, jobID, r.token, r.cfg.LeaseTTL); err != nil {
		// The job still processes; it just loses crash recovery.
		logger.Error("failed to acquire processing lease", "error", err)
	}

	logger.Info("processing job", "filename", job.Filename)

	deck, outputPath, report, err := r.runPipeline(job)
	if err != nil {
		logger.Error("job failed", "error", err)
		r.finishJob(ctx, job, func(now time.Time) error {
			return job.MarkFailed(err.Error(), now)
		}, logger)
		return
	}

	r.finishJob(ctx, job, func(now time.Time) error {
		return job.MarkCompleted(deck, outputPath, report, now)
	}, logger)
	logger.Info("job completed", "cards", len(deck), "output_path", outputPath)
}

// finishJob applies a terminal transition, persists it, and releases the
// lease.
func (r *Runner) finishJob(
	ctx context.Context,
	job *domain.Job,
	transition func(now time.Time) error,
	logger *slog.Logger,
) {
	if err := transition(time.Now()); err != nil {
		logger.Error("invalid terminal transition", "error", err)
		return
	}
	if err := r.jobs.Save(ctx, job); err != nil {
		logger.Error("failed to persist terminal status", "error", err)
		return
	}
	if err := r.jobs.ReleaseLease(ctx, job.ID); err != nil {
		logger.Error("failed to release processing lease", "error", err)
	}
}

// runPipeline reads the job input, executes the analysis stages, and
// writes the deck artifact. Panics from any stage are contained here and
// converted to an error so one bad document cannot kill the loop.
func (r *Runner) runPipeline(job *domain.Job) (deck domain.Deck, outputPath string, report *domain.ReadabilityReport, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pipeline panicked: %v", rec)
		}
	}()

	text, err := r.readInput(job)
	if err != nil {
		return nil, "", nil, err
	}

	result, err := r.pipeline.Run(text, job.Filename)
	if err != nil {
		return nil, "", nil, err
	}

	outputPath, err = r.writeDeck(job.ID, result.Deck)
	if err != nil {
		return nil, "", nil, err
	}

	return result.Deck, outputPath, result.Readability, nil
}

// readInput returns the document text: inline content when present,
// otherwise the referenced file.
func (r *Runner) readInput(job *domain.Job) (string, error) {
	if job.Content != "" {
		return job.Content, nil
	}
	if job.FilePath == "" {
		return "", errors.New("job has neither inline content nor a file path")
	}
	data, err := os.ReadFile(job.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// writeDeck writes the CSV artifact for a job to the output directory.
func (r *Runner) writeDeck(jobID uuid.UUID, deck domain.Deck) (string, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s_deck.csv", jobID))
	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create deck file: %w", err)
	}

	if err := deck.WriteCSV(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write deck file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close deck file: %w", err)
	}
	return outputPath, nil
}

// sleep pauses for d or until the runner is stopped.
func (r *Runner) sleep(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.ctx.Done():
	}
}
