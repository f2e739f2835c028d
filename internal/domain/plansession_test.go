package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanSession_AllSubPlansPending(t *testing.T) {
	now := time.Now().UTC()
	s := NewPlanSession("sess-1", now)

	assert.Equal(t, SessionIdle, s.Status)
	assert.Equal(t, 0, s.Progress)
	assert.Equal(t, SessionSchemaVersion, s.SchemaVersion)
	for _, kind := range AllArtifactKinds {
		assert.Equal(t, SubPlanPending, s.SubPlanFor(kind).Status)
	}
	require.NoError(t, s.Validate())
}

func TestSubPlanFor_UnknownKindReturnsNil(t *testing.T) {
	s := NewPlanSession("sess-1", time.Now())
	assert.Nil(t, s.SubPlanFor(ArtifactKind("bogus")))
}

func TestValidate_ReadyWithoutPlanFails(t *testing.T) {
	s := NewPlanSession("sess-1", time.Now())
	s.Nutrition.Status = SubPlanReady

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nutrition")
}

func TestValidate_FailedWithoutErrorFails(t *testing.T) {
	s := NewPlanSession("sess-1", time.Now())
	s.Workout.Status = SubPlanFailed

	require.Error(t, s.Validate())
}

func TestValidate_PlanAndErrorMutuallyExclusive(t *testing.T) {
	s := NewPlanSession("sess-1", time.Now())
	s.Stages.Status = SubPlanReady
	s.Stages.Plan = json.RawMessage(`{"stages":[]}`)
	s.Stages.Error = "boom"

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_ProgressRange(t *testing.T) {
	s := NewPlanSession("sess-1", time.Now())
	s.Progress = 101
	require.Error(t, s.Validate())

	s.Progress = 100
	require.NoError(t, s.Validate())
}

func TestGeneratingSince(t *testing.T) {
	now := time.Now().UTC()
	started := now.Add(-45 * time.Second)

	sp := SubPlan{Status: SubPlanGenerating, StartedAt: &started}
	assert.Equal(t, 45*time.Second, sp.GeneratingSince(now))

	sp.Status = SubPlanReady
	assert.Equal(t, time.Duration(0), sp.GeneratingSince(now))

	sp = SubPlan{Status: SubPlanGenerating}
	assert.Equal(t, time.Duration(0), sp.GeneratingSince(now))
}
