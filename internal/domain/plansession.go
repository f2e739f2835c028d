package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SessionSchemaVersion is embedded in every persisted PlanSession.
// A stored session carrying a different version is treated as absent.
const SessionSchemaVersion = 2

// SubPlan is one artifact's generation record within a PlanSession.
// Plan and Error are mutually exclusive: a ready sub-plan carries a plan,
// a failed one carries an error, and neither carries both.
type SubPlan struct {
	Status      SubPlanStatus
	Plan        json.RawMessage
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// PlanSession is the mutable, persisted state of one generation attempt.
type PlanSession struct {
	ID            string
	SchemaVersion int
	Status        SessionStatus
	Progress      int
	Message       string
	Nutrition     SubPlan
	Workout       SubPlan
	Stages        SubPlan
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPlanSession returns an idle session with all sub-plans pending.
func NewPlanSession(id string, now time.Time) *PlanSession {
	pending := SubPlan{Status: SubPlanPending}
	return &PlanSession{
		ID:            id,
		SchemaVersion: SessionSchemaVersion,
		Status:        SessionIdle,
		Nutrition:     pending,
		Workout:       pending,
		Stages:        pending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SubPlanFor returns a pointer to the named artifact's sub-plan.
func (s *PlanSession) SubPlanFor(kind ArtifactKind) *SubPlan {
	switch kind {
	case ArtifactNutrition:
		return &s.Nutrition
	case ArtifactWorkout:
		return &s.Workout
	case ArtifactStages:
		return &s.Stages
	default:
		return nil
	}
}

// Validate checks the sub-plan consistency invariants.
func (s *PlanSession) Validate() error {
	for _, kind := range AllArtifactKinds {
		sp := s.SubPlanFor(kind)
		if err := sp.validate(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	if !ValidSessionStatuses[string(s.Status)] {
		return fmt.Errorf("invalid session status %q", s.Status)
	}
	if s.Progress < 0 || s.Progress > 100 {
		return fmt.Errorf("progress %d out of range", s.Progress)
	}
	return nil
}

func (sp *SubPlan) validate() error {
	if !ValidSubPlanStatuses[string(sp.Status)] {
		return fmt.Errorf("invalid sub-plan status %q", sp.Status)
	}
	if len(sp.Plan) > 0 && sp.Error != "" {
		return fmt.Errorf("plan and error are mutually exclusive")
	}
	if sp.Status == SubPlanReady && len(sp.Plan) == 0 {
		return fmt.Errorf("ready sub-plan has no plan")
	}
	if sp.Status == SubPlanFailed && sp.Error == "" {
		return fmt.Errorf("failed sub-plan has no error")
	}
	return nil
}

// Ready reports whether the sub-plan holds a generated artifact.
func (sp *SubPlan) Ready() bool { return sp.Status == SubPlanReady }

// GeneratingSince returns how long the sub-plan has been stuck in the
// generating state, or zero if it is not generating.
func (sp *SubPlan) GeneratingSince(now time.Time) time.Duration {
	if sp.Status != SubPlanGenerating || sp.StartedAt == nil {
		return 0
	}
	return now.Sub(*sp.StartedAt)
}
