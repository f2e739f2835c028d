// Package lock provides cross-instance mutual exclusion for plan
// generation, plus an in-process event hub used to fan progress out to
// interested subscribers.
//
// The lease is advisory: holders heartbeat it every 30 seconds, and a
// lease whose heartbeat is older than 5 minutes is considered
// abandoned and may be taken over by another instance. A crashed
// holder therefore blocks competitors for at most the staleness
// window.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adriancosta/fitflow/internal/repository"
)

const (
	// GenerationLockID is the single lease guarding plan generation.
	GenerationLockID = "plan_generation"

	// Staleness is how old a heartbeat may be before the lease counts
	// as abandoned.
	Staleness = 5 * time.Minute

	// HeartbeatInterval is how often a holder refreshes its lease.
	HeartbeatInterval = 30 * time.Second
)

// ErrHeldElsewhere reports that another live instance holds the lease.
var ErrHeldElsewhere = errors.New("generation lock held by another instance")

// Lease is a single instance's handle on the generation lock.
type Lease struct {
	repo       repository.LockRepo
	id         string
	instanceID string
	now        func() time.Time
}

// LeaseOption configures a Lease.
type LeaseOption func(*Lease)

// WithClock overrides the lease's time source.
func WithClock(now func() time.Time) LeaseOption {
	return func(l *Lease) { l.now = now }
}

// WithInstanceID overrides the generated instance identifier.
func WithInstanceID(id string) LeaseOption {
	return func(l *Lease) { l.instanceID = id }
}

// NewLease creates a lease handle for this process. Each process gets a
// unique instance identifier so leases can be attributed and released
// safely.
func NewLease(repo repository.LockRepo, opts ...LeaseOption) *Lease {
	l := &Lease{
		repo:       repo,
		id:         GenerationLockID,
		instanceID: uuid.NewString(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// InstanceID returns the identifier this lease writes into the store.
func (l *Lease) InstanceID() string { return l.instanceID }

// Acquire takes the lease if it is free, already ours, or abandoned.
// It returns ErrHeldElsewhere when another instance holds a live lease.
func (l *Lease) Acquire(ctx context.Context) error {
	rec, err := l.repo.Get(ctx, l.id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("reading generation lock: %w", err)
	}
	if rec != nil && rec.InstanceID != l.instanceID && !l.stale(rec) {
		return ErrHeldElsewhere
	}
	return l.write(ctx)
}

// Heartbeat refreshes the lease timestamp. A holder that stops
// heartbeating loses the lease after the staleness window.
func (l *Lease) Heartbeat(ctx context.Context) error {
	rec, err := l.repo.Get(ctx, l.id)
	if err != nil {
		return fmt.Errorf("reading generation lock: %w", err)
	}
	if rec.InstanceID != l.instanceID {
		return ErrHeldElsewhere
	}
	return l.write(ctx)
}

// Release drops the lease if this instance holds it. Releasing a lease
// held by someone else is a no-op.
func (l *Lease) Release(ctx context.Context) error {
	if err := l.repo.Delete(ctx, l.id, l.instanceID); err != nil {
		return fmt.Errorf("releasing generation lock: %w", err)
	}
	return nil
}

// Keepalive heartbeats the lease until ctx is cancelled. Heartbeat
// failures are tolerated; the next tick retries.
func (l *Lease) Keepalive(ctx context.Context) {
	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = l.Heartbeat(ctx)
		}
	}
}

func (l *Lease) stale(rec *repository.LockRecord) bool {
	return l.now().Sub(rec.HeartbeatAt) >= Staleness
}

func (l *Lease) write(ctx context.Context) error {
	err := l.repo.Upsert(ctx, repository.LockRecord{
		ID:          l.id,
		InstanceID:  l.instanceID,
		HeartbeatAt: l.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("writing generation lock: %w", err)
	}
	return nil
}
