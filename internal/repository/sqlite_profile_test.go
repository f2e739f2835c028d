package repository

import (
	"context"
	"testing"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_Get_NotFoundWhenEmpty(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProfile()
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GenderFemale, got.Gender)
	require.NotNil(t, got.Age)
	assert.Equal(t, 29, *got.Age)
	assert.Equal(t, 165.0, *got.HeightCm)
	assert.Equal(t, 68.0, *got.WeightKg)
	assert.Equal(t, 60.0, *got.TargetWeightKg)
	assert.Equal(t, domain.GoalLoss, got.Goal)
	assert.Equal(t, domain.DietNone, got.Diet)
	assert.Nil(t, got.CalorieTarget)
}

func TestProfileRepo_Upsert_Overwrites(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile()))

	updated := testutil.NewTestProfile(
		testutil.WithGoal(domain.GoalMaintain),
		testutil.WithCalorieTarget(2100),
	)
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalMaintain, got.Goal)
	require.NotNil(t, got.CalorieTarget)
	assert.Equal(t, 2100, *got.CalorieTarget)
}

func TestProfileRepo_Upsert_PartialProfileRoundTrips(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := &domain.Profile{Gender: domain.GenderMale}
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Age)
	assert.Nil(t, got.HeightCm)
	assert.Equal(t, domain.GenderMale, got.Gender)
}
