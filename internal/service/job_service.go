// Package service implements the submission path and the query surface
// over job records: validate and enqueue new jobs, look up status, and
// list jobs for an owner.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/broker"
	"github.com/deckforge/deckforge/internal/domain"
	"github.com/deckforge/deckforge/internal/store"
)

// Common sentinel errors for JobService.
var (
	// ErrJobNotFound indicates the requested job does not exist. It is
	// deliberately distinct from a failed job, which is a real record.
	ErrJobNotFound = errors.New("job not found")
)

// JobService provides job submission and query operations.
// Version: 1.0
type JobService interface {
	// Submit validates the input, creates a queued job record, durably
	// stores it, and only then pushes the job id onto the dispatch
	// queue. The record always exists before any worker can claim the
	// id.
	Submit(ctx context.Context, filename, content, filePath, owner string) (*domain.Job, error)

	// GetStatus retrieves a job record by id, or ErrJobNotFound.
	GetStatus(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// ListJobs returns job records sorted by creation time, most recent
	// first. An empty owner matches all owners; limit <= 0 means no
	// limit.
	ListJobs(ctx context.Context, owner string, limit int) ([]*domain.Job, error)
}

// JobServiceError wraps errors from the job service with operation
// context.
type JobServiceError struct {
	// Operation is the operation that failed (e.g., "submit").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *JobServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("job service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *JobServiceError) Unwrap() error {
	return e.Err
}

// jobServiceImpl implements JobService over the job store and broker.
type jobServiceImpl struct {
	jobs   store.JobStore
	broker broker.Broker
	logger *slog.Logger
}

// NewJobService creates a JobService. Returns an error if a required
// dependency is nil; a nil logger falls back to slog.Default.
func NewJobService(jobs store.JobStore, b broker.Broker, logger *slog.Logger) (JobService, error) {
	if jobs == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "job store cannot be nil"}
	}
	if b == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "broker cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &jobServiceImpl{
		jobs:   jobs,
		broker: b,
		logger: logger.With("component", "job_service"),
	}, nil
}

// Submit creates the record first and enqueues second. If the enqueue
// fails the record survives as queued; the caller sees the error and the
// reaper-free queue never holds an id without a record.
func (s *jobServiceImpl) Submit(
	ctx context.Context,
	filename, content, filePath, owner string,
) (*domain.Job, error) {
	job, err := domain.NewJob(filename, content, filePath, owner)
	if err != nil {
		s.logger.Error("failed to create job record",
			"error", err,
			"filename", filename,
			"owner", owner)
		return nil, &JobServiceError{Operation: "submit", Message: "invalid submission", Err: err}
	}

	// Record-then-enqueue: a worker must never claim an id that has no
	// record behind it.
	if err := s.jobs.Save(ctx, job); err != nil {
		s.logger.Error("failed to store job record",
			"error", err,
			"job_id", job.ID)
		return nil, &JobServiceError{Operation: "submit", Message: "failed to store job record", Err: err}
	}

	if err := s.broker.Push(ctx, store.JobQueue, job.ID.String()); err != nil {
		s.logger.Error("failed to enqueue job",
			"error", err,
			"job_id", job.ID)
		return nil, &JobServiceError{Operation: "submit", Message: "failed to enqueue job", Err: err}
	}

	s.logger.Info("job submitted",
		"job_id", job.ID,
		"filename", job.Filename,
		"owner", job.Owner)
	return job, nil
}

// GetStatus retrieves a job record by id.
func (s *jobServiceImpl) GetStatus(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.Get(ctx, id)
	if errors.Is(err, store.ErrJobNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		s.logger.Error("failed to retrieve job", "error", err, "job_id", id)
		return nil, &JobServiceError{Operation: "get_status", Message: "failed to retrieve job", Err: err}
	}
	return job, nil
}

// ListJobs returns job records, most recent first.
func (s *jobServiceImpl) ListJobs(ctx context.Context, owner string, limit int) ([]*domain.Job, error) {
	jobs, err := s.jobs.List(ctx, owner, limit)
	if err != nil {
		s.logger.Error("failed to list jobs", "error", err, "owner", owner)
		return nil, &JobServiceError{Operation: "list_jobs", Message: "failed to list jobs", Err: err}
	}
	return jobs, nil
}
