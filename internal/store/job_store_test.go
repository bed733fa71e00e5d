package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/broker"
	"github.com/deckforge/deckforge/internal/domain"
)

func newTestJob(t *testing.T, owner string) *domain.Job {
	t.Helper()
	job, err := domain.NewJob("notes.txt", "some content", "", owner)
	require.NoError(t, err)
	return job
}

func TestJobStoreSaveAndGet(t *testing.T) {
	s := NewJobStore(broker.NewMemoryBroker())
	ctx := context.Background()

	job := newTestJob(t, "alice")
	require.NoError(t, s.Save(ctx, job))

	loaded, err := s.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, loaded.ID)
	assert.Equal(t, job.Filename, loaded.Filename)
	assert.Equal(t, domain.JobStatusQueued, loaded.Status)
	assert.True(t, job.CreatedAt.Equal(loaded.CreatedAt))
}

func TestJobStoreSaveRejectsInvalidRecord(t *testing.T) {
	s := NewJobStore(broker.NewMemoryBroker())

	job := newTestJob(t, "alice")
	job.Filename = ""

	assert.ErrorIs(t, s.Save(context.Background(), job), domain.ErrEmptyJobFilename)
}

func TestJobStoreGetNotFound(t *testing.T) {
	s := NewJobStore(broker.NewMemoryBroker())

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobStoreGetCorruptRecord(t *testing.T) {
	b := broker.NewMemoryBroker()
	s := NewJobStore(b)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, b.Set(ctx, "job:"+id.String(), "{not json"))

	_, err := s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrCorruptJob)
}

func TestJobStoreList(t *testing.T) {
	s := NewJobStore(broker.NewMemoryBroker())
	ctx := context.Background()

	oldest := newTestJob(t, "alice")
	oldest.CreatedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	middle := newTestJob(t, "bob")
	middle.CreatedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newest := newTestJob(t, "alice")
	newest.CreatedAt = time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)

	for _, job := range []*domain.Job{middle, oldest, newest} {
		require.NoError(t, s.Save(ctx, job))
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, oldest.ID, all[2].ID)

	alice, err := s.List(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, alice, 2)
	assert.Equal(t, newest.ID, alice[0].ID)
	assert.Equal(t, oldest.ID, alice[1].ID)

	limited, err := s.List(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, newest.ID, limited[0].ID)

	none, err := s.List(ctx, "carol", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJobStoreListSkipsCorruptRecords(t *testing.T) {
	b := broker.NewMemoryBroker()
	s := NewJobStore(b)
	ctx := context.Background()

	good := newTestJob(t, "alice")
	require.NoError(t, s.Save(ctx, good))
	require.NoError(t, b.Set(ctx, "job:"+uuid.NewString(), "{not json"))

	jobs, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, good.ID, jobs[0].ID)
}

func TestJobStoreLeaseLifecycle(t *testing.T) {
	s := NewJobStore(broker.NewMemoryBroker())
	ctx := context.Background()
	id := uuid.New()

	_, err := s.GetLease(ctx, id)
	assert.ErrorIs(t, err, ErrLeaseNotFound)

	require.NoError(t, s.AcquireLease(ctx, id, "worker-token", time.Hour))

	lease, err := s.GetLease(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, lease.JobID)
	assert.Equal(t, "worker-token", lease.Token)
	assert.False(t, lease.Expired(time.Now().UTC()))
	assert.True(t, lease.Expired(time.Now().UTC().Add(2*time.Hour)))

	require.NoError(t, s.ReleaseLease(ctx, id))
	_, err = s.GetLease(ctx, id)
	assert.ErrorIs(t, err, ErrLeaseNotFound)
}
