package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriancosta/fitflow/internal/repository"
	"github.com/adriancosta/fitflow/internal/service"
	"github.com/adriancosta/fitflow/internal/testutil"
)

type progressFixture struct {
	svc      service.ProgressService
	meals    repository.MealRepo
	weights  repository.WeightRepo
	profiles repository.ProfileRepo
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	conn := testutil.NewTestDB(t)
	meals := repository.NewSQLiteMealRepo(conn)
	weights := repository.NewSQLiteWeightRepo(conn)
	profiles := repository.NewSQLiteProfileRepo(conn)
	return &progressFixture{
		svc:      service.NewProgressService(meals, weights, profiles),
		meals:    meals,
		weights:  weights,
		profiles: profiles,
	}
}

func TestDashboard_Empty(t *testing.T) {
	f := newProgressFixture(t)

	data, err := f.svc.Dashboard(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, data.Today.Calories)
	assert.Zero(t, data.Streak)
	assert.Nil(t, data.LatestWeight)
	assert.Nil(t, data.Profile)
}

func TestDashboard_AggregatesToday(t *testing.T) {
	f := newProgressFixture(t)
	now := time.Now().UTC()

	require.NoError(t, f.meals.Create(context.Background(), testutil.NewTestMeal("Breakfast", 400, now.Add(-8*time.Hour))))
	require.NoError(t, f.meals.Create(context.Background(), testutil.NewTestMeal("Lunch", 650, now.Add(-3*time.Hour))))
	require.NoError(t, f.meals.Create(context.Background(), testutil.NewTestMeal("Old dinner", 900, now.AddDate(0, 0, -2))))

	data, err := f.svc.Dashboard(context.Background(), now)
	require.NoError(t, err)
	// Meals logged 8 and 3 hours ago may straddle midnight; totals per
	// day still have to add up across buckets.
	var total float64
	for _, d := range data.Days {
		total += d.Calories
	}
	assert.Equal(t, 1950.0, total)
	assert.GreaterOrEqual(t, len(data.Days), 2)
}

func TestDashboard_StreakAndTrend(t *testing.T) {
	f := newProgressFixture(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		meal := testutil.NewTestMeal("Meal", 500, now.AddDate(0, 0, -i))
		require.NoError(t, f.meals.Create(context.Background(), meal))
	}
	require.NoError(t, f.weights.Create(context.Background(), testutil.NewTestWeight(68.0, now.AddDate(0, 0, -6))))
	require.NoError(t, f.weights.Create(context.Background(), testutil.NewTestWeight(67.2, now)))

	data, err := f.svc.Dashboard(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, data.Streak)
	assert.InDelta(t, -0.8, data.WeightTrend, 0.001)
	require.NotNil(t, data.LatestWeight)
	assert.Equal(t, 67.2, data.LatestWeight.WeightKg)
}

func TestDashboard_ProfileTarget(t *testing.T) {
	f := newProgressFixture(t)
	profile := testutil.NewTestProfile(testutil.WithCalorieTarget(1800))
	require.NoError(t, f.profiles.Upsert(context.Background(), profile))

	data, err := f.svc.Dashboard(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, data.Profile)
	assert.Equal(t, 1800, data.CalorieTarget)
}

func TestLogWeight(t *testing.T) {
	f := newProgressFixture(t)

	entry, err := f.svc.LogWeight(context.Background(), 72.4, time.Time{})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.RecordedAt.IsZero())

	listed, err := f.svc.ListWeights(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 72.4, listed[0].WeightKg)
}

func TestLogWeight_OutOfRange(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.svc.LogWeight(context.Background(), 0, time.Now())
	assert.ErrorContains(t, err, "out of range")

	_, err = f.svc.LogWeight(context.Background(), 900, time.Now())
	assert.ErrorContains(t, err, "out of range")
}
