// Package store persists job records and processing leases in the
// coordination store. Records are stored as JSON under "job:<id>" keys,
// the same shape the query surface serves back out.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/broker"
	"github.com/deckforge/deckforge/internal/domain"
)

// JobQueue is the dispatch queue name shared by submitters and workers.
const JobQueue = "job_queue"

// Key prefixes in the coordination store.
const (
	jobKeyPrefix   = "job:"
	leaseKeyPrefix = "lease:"
)

// Common errors returned by the JobStore.
var (
	// ErrJobNotFound indicates no record exists for the requested id.
	ErrJobNotFound = errors.New("job not found")

	// ErrCorruptJob indicates a record exists but cannot be decoded.
	// Claim-time callers skip such records rather than failing them,
	// since there is no usable record to mutate.
	ErrCorruptJob = errors.New("job record is corrupt")

	// ErrLeaseNotFound indicates no lease exists for the requested job.
	ErrLeaseNotFound = errors.New("job lease not found")
)

// JobStore defines job record persistence.
// Version: 1.0
type JobStore interface {
	// Save writes the record, overwriting any previous version. Callers
	// must hold processing rights for the job (or be performing the
	// initial creation write).
	Save(ctx context.Context, job *domain.Job) error

	// Get retrieves a record by id. Returns ErrJobNotFound if absent and
	// ErrCorruptJob if present but undecodable.
	Get(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// List returns records sorted by creation time, most recent first.
	// An empty owner matches all owners; limit <= 0 means no limit.
	List(ctx context.Context, owner string, limit int) ([]*domain.Job, error)

	// AcquireLease records a processing claim for the job: the claiming
	// worker's token plus an expiry deadline.
	AcquireLease(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error

	// GetLease retrieves the current lease for a job, or ErrLeaseNotFound.
	GetLease(ctx context.Context, id uuid.UUID) (*Lease, error)

	// ReleaseLease removes the lease for a job.
	ReleaseLease(ctx context.Context, id uuid.UUID) error
}

// Lease is a time-bounded processing claim over one job. Leases let a
// reaper detect jobs stranded by a dead worker; the lease-free original
// behavior left such jobs in processing forever.
type Lease struct {
	JobID     uuid.UUID `json:"job_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the lease deadline has passed.
func (l *Lease) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// BrokerJobStore implements JobStore over the coordination-store
// primitives. It is the only writer path for job records.
type BrokerJobStore struct {
	broker broker.Broker
}

// NewJobStore creates a JobStore backed by the given broker.
func NewJobStore(b broker.Broker) *BrokerJobStore {
	return &BrokerJobStore{broker: b}
}

// Save writes the record as JSON under its job key.
func (s *BrokerJobStore) Save(ctx context.Context, job *domain.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job record: %w", err)
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	if err := s.broker.Set(ctx, jobKey(job.ID), string(data)); err != nil {
		return fmt.Errorf("failed to store job %s: %w", job.ID, err)
	}
	return nil
}

// Get retrieves and decodes a record by id.
func (s *BrokerJobStore) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	data, err := s.broker.Get(ctx, jobKey(id))
	if errors.Is(err, broker.ErrKeyNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	var job domain.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("%w: job %s: %v", ErrCorruptJob, id, err)
	}
	return &job, nil
}

// List scans all job keys, decodes each record, filters by owner, and
// sorts most-recent-first. Undecodable records are silently skipped so
// one corrupt entry cannot break the listing.
func (s *BrokerJobStore) List(ctx context.Context, owner string, limit int) ([]*domain.Job, error) {
	keys, err := s.broker.Keys(ctx, jobKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to scan job keys: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(keys))
	for _, key := range keys {
		data, err := s.broker.Get(ctx, key)
		if errors.Is(err, broker.ErrKeyNotFound) {
			// Deleted between scan and read.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", key, err)
		}

		var job domain.Job
		if err := json.Unmarshal([]byte(data), &job); err != nil {
			continue
		}
		if owner != "" && job.Owner != owner {
			continue
		}
		jobs = append(jobs, &job)
	}

	// Most recent first; ties broken by id string for determinism.
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID.String() < jobs[j].ID.String()
	})

	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// AcquireLease writes the processing claim for a job.
func (s *BrokerJobStore) AcquireLease(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	lease := Lease{
		JobID:     id,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	data, err := json.Marshal(lease)
	if err != nil {
		return fmt.Errorf("failed to encode lease for job %s: %w", id, err)
	}
	if err := s.broker.Set(ctx, leaseKey(id), string(data)); err != nil {
		return fmt.Errorf("failed to store lease for job %s: %w", id, err)
	}
	return nil
}

// GetLease retrieves the current lease for a job.
func (s *BrokerJobStore) GetLease(ctx context.Context, id uuid.UUID) (*Lease, error) {
	data, err := s.broker.Get(ctx, leaseKey(id))
	if errors.Is(err, broker.ErrKeyNotFound) {
		return nil, ErrLeaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lease for job %s: %w", id, err)
	}

	var lease Lease
	if err := json.Unmarshal([]byte(data), &lease); err != nil {
		return nil, fmt.Errorf("failed to decode lease for job %s: %w", id, err)
	}
	return &lease, nil
}

// ReleaseLease removes the lease for a job.
func (s *BrokerJobStore) ReleaseLease(ctx context.Context, id uuid.UUID) error {
	if err := s.broker.Delete(ctx, leaseKey(id)); err != nil {
		return fmt.Errorf("failed to release lease for job %s: %w", id, err)
	}
	return nil
}

func jobKey(id uuid.UUID) string {
	return jobKeyPrefix + id.String()
}

func leaseKey(id uuid.UUID) string {
	return leaseKeyPrefix + id.String()
}

// Ensure BrokerJobStore implements JobStore.
var _ JobStore = (*BrokerJobStore)(nil)
