package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/deckforge/deckforge/internal/domain"
	"github.com/deckforge/deckforge/internal/store"
)

// reapLoop periodically requeues jobs stranded in processing by a dead
// worker. A processing job whose lease is missing or expired is reset to
// queued and pushed back onto the dispatch queue. This recovery path is
// the only permitted reversal of the job state machine.
func (r *Runner) reapLoop() {
	defer r.wg.Done()

	logger := r.logger.With("component", "lease_reaper")
	ticker := time.NewTicker(r.cfg.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.reapOnce(context.Background(), logger)
		}
	}
}

func (r *Runner) reapOnce(ctx context.Context, logger *slog.Logger) {
	jobs, err := r.jobs.List(ctx, "", 0)
	if err != nil {
		logger.Error("failed to list jobs for lease check", "error", err)
		return
	}

	now := time.Now().UTC()
	for _, job := range jobs {
		if job.Status != domain.JobStatusProcessing {
			continue
		}

		lease, err := r.jobs.GetLease(ctx, job.ID)
		switch {
		case errors.Is(err, store.ErrLeaseNotFound):
			// Processing with no lease: claimed by a worker that died
			// before the lease write, or a pre-lease record.
		case err != nil:
			logger.Error("failed to load lease", "job_id", job.ID, "error", err)
			continue
		case !lease.Expired(now):
			continue
		}

		if err := job.Requeue(now); err != nil {
			logger.Error("failed to requeue stranded job", "job_id", job.ID, "error", err)
			continue
		}
		if err := r.jobs.Save(ctx, job); err != nil {
			logger.Error("failed to persist requeued job", "job_id", job.ID, "error", err)
			continue
		}
		if err := r.jobs.ReleaseLease(ctx, job.ID); err != nil {
			logger.Error("failed to clear expired lease", "job_id", job.ID, "error", err)
		}
		if err := r.broker.Push(ctx, store.JobQueue, job.ID.String()); err != nil {
			logger.Error("failed to push requeued job onto queue", "job_id", job.ID, "error", err)
			continue
		}

		logger.Info("requeued job with expired lease", "job_id", job.ID)
	}
}
