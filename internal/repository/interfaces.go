package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
)

// SubPlanPatch describes a partial update to one sub-plan. Only non-nil
// fields are written; Plan and Error are never overwritten with NULL unless
// the corresponding Clear flag is set (used when retrying an artifact).
type SubPlanPatch struct {
	Status      *domain.SubPlanStatus
	Plan        json.RawMessage
	ClearPlan   bool
	Error       *string
	ClearError  bool
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// PlanSessionRepo is the durable store for in-progress generation state.
type PlanSessionRepo interface {
	// Create persists a new session. Any previous session is superseded.
	Create(ctx context.Context, s *domain.PlanSession) error
	// Get returns the current session, or nil when none exists or the
	// stored record fails the version/shape check.
	Get(ctx context.Context) (*domain.PlanSession, error)
	// UpdateSubPlan merges the patch into the named sub-plan.
	UpdateSubPlan(ctx context.Context, id string, kind domain.ArtifactKind, patch SubPlanPatch) error
	// UpdateProgress writes progress and its status message. A value lower
	// than the stored progress is rejected with ErrProgressRegression.
	UpdateProgress(ctx context.Context, id string, value int, message string) error
	SetStatus(ctx context.Context, id string, status domain.SessionStatus) error
	Delete(ctx context.Context, id string) error
}

// DraftRepo is the store for the finalized program draft snapshot.
type DraftRepo interface {
	Save(ctx context.Context, d *domain.ProgramDraft) error
	// Get returns the draft, or nil when absent or when the stored version
	// does not match domain.DraftSchemaVersion.
	Get(ctx context.Context) (*domain.ProgramDraft, error)
	Clear(ctx context.Context) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type MealRepo interface {
	Create(ctx context.Context, m *domain.MealLog) error
	ListSince(ctx context.Context, since time.Time) ([]*domain.MealLog, error)
	Delete(ctx context.Context, id string) error
}

type FoodRepo interface {
	Upsert(ctx context.Context, f *domain.Food) error
	GetByBarcode(ctx context.Context, barcode string) (*domain.Food, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Food, error)
}

type WeightRepo interface {
	Create(ctx context.Context, e *domain.WeightEntry) error
	ListSince(ctx context.Context, since time.Time) ([]*domain.WeightEntry, error)
	Delete(ctx context.Context, id string) error
}

// LockRecord is the persisted cross-instance lease for the pipeline.
type LockRecord struct {
	ID          string
	InstanceID  string
	HeartbeatAt time.Time
}

type LockRepo interface {
	Get(ctx context.Context, id string) (*LockRecord, error)
	Upsert(ctx context.Context, rec LockRecord) error
	// Delete removes the lock only when held by the given instance.
	Delete(ctx context.Context, id, instanceID string) error
}
