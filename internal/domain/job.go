package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the processing state of a submitted document.
type JobStatus string

// Possible job status values. Transitions are monotonic:
// queued -> processing -> (completed | failed).
const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// DefaultOwner is assigned when a submission carries no owner label.
const DefaultOwner = "anonymous"

// Common validation errors for Job
var (
	ErrEmptyJobID       = errors.New("job ID cannot be empty")
	ErrEmptyJobFilename = errors.New("job filename cannot be empty")
	ErrEmptyJobInput    = errors.New("job requires either inline content or a file path")
	ErrInvalidJobStatus = errors.New("invalid job status")

	// ErrInvalidTransition indicates a status change that the state
	// machine does not permit.
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// Job is the persisted record for one submitted document. It tracks the
// original input reference, the processing state, and the produced deck.
//
// The record is exclusively owned by the coordination store while queued;
// processing rights transfer to exactly one worker for the duration of
// processing, so no field-level locking is needed.
type Job struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Owner    string    `json:"owner"`
	Status   JobStatus `json:"status"`

	// Input: exactly one of Content (inline text) or FilePath (filesystem
	// reference) must be set. Read-only to the pipeline.
	Content  string `json:"content,omitempty"`
	FilePath string `json:"filepath,omitempty"`

	// Output, populated on completion.
	Deck        Deck               `json:"deck,omitempty"`
	OutputPath  string             `json:"output_path,omitempty"`
	Readability *ReadabilityReport `json:"readability,omitempty"`

	// Error, populated only when Status is failed.
	Error string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// NewJob creates a queued Job for the given filename and input. Either
// content or filePath must be non-empty. An empty owner defaults to
// DefaultOwner. Returns an error if validation fails.
func NewJob(filename, content, filePath, owner string) (*Job, error) {
	if owner == "" {
		owner = DefaultOwner
	}

	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.New(),
		Filename:  filename,
		Owner:     owner,
		Status:    JobStatusQueued,
		Content:   content,
		FilePath:  filePath,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks that the Job carries valid data.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return ErrEmptyJobID
	}
	if j.Filename == "" {
		return ErrEmptyJobFilename
	}
	if j.Content == "" && j.FilePath == "" {
		return ErrEmptyJobInput
	}
	if !isValidJobStatus(j.Status) {
		return ErrInvalidJobStatus
	}
	return nil
}

// MarkProcessing performs the queued -> processing transition, setting
// StartedAt. Returns ErrInvalidTransition from any other state.
func (j *Job) MarkProcessing(now time.Time) error {
	if j.Status != JobStatusQueued {
		return transitionError(j.Status, JobStatusProcessing)
	}
	now = now.UTC()
	j.Status = JobStatusProcessing
	j.StartedAt = &now
	j.UpdatedAt = now
	return nil
}

// MarkCompleted performs the processing -> completed transition, recording
// the produced deck and output artifact path.
func (j *Job) MarkCompleted(deck Deck, outputPath string, report *ReadabilityReport, now time.Time) error {
	if j.Status != JobStatusProcessing {
		return transitionError(j.Status, JobStatusCompleted)
	}
	now = now.UTC()
	j.Status = JobStatusCompleted
	j.Deck = deck
	j.OutputPath = outputPath
	j.Readability = report
	j.CompletedAt = &now
	j.UpdatedAt = now
	return nil
}

// MarkFailed performs the processing -> failed transition, recording the
// error message. The rest of the record keeps its last-known metadata.
func (j *Job) MarkFailed(errMsg string, now time.Time) error {
	if j.Status != JobStatusProcessing {
		return transitionError(j.Status, JobStatusFailed)
	}
	now = now.UTC()
	j.Status = JobStatusFailed
	j.Error = errMsg
	j.FailedAt = &now
	j.UpdatedAt = now
	return nil
}

// Terminal reports whether the job has reached a terminal state.
func (j *Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Requeue resets a processing job back to queued. This is a recovery
// operation reserved for the lease reaper when a worker died mid-job; it
// is the only permitted reversal of the state machine.
func (j *Job) Requeue(now time.Time) error {
	if j.Status != JobStatusProcessing {
		return transitionError(j.Status, JobStatusQueued)
	}
	now = now.UTC()
	j.Status = JobStatusQueued
	j.StartedAt = nil
	j.UpdatedAt = now
	return nil
}

func transitionError(from, to JobStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func isValidJobStatus(status JobStatus) bool {
	switch status {
	case JobStatusQueued, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}
