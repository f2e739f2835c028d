package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/genapi"
	"github.com/adriancosta/fitflow/internal/repository"
	"github.com/adriancosta/fitflow/internal/service"
	"github.com/adriancosta/fitflow/internal/testutil"
)

// stubFoodAPI serves the vision and barcode endpoints used by the meal
// service; generation endpoints are never reachable from here.
type stubFoodAPI struct {
	mu           sync.Mutex
	analysis     *genapi.MealAnalysis
	analysisErr  error
	barcodeFoods map[string]*genapi.BarcodeFood
	barcodeCalls int
}

func (s *stubFoodAPI) AnalyzeMealPhoto(ctx context.Context, image []byte) (*genapi.MealAnalysis, error) {
	if s.analysisErr != nil {
		return nil, s.analysisErr
	}
	return s.analysis, nil
}

func (s *stubFoodAPI) LookupBarcode(ctx context.Context, code string) (*genapi.BarcodeFood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barcodeCalls++
	if f, ok := s.barcodeFoods[code]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("barcode %s: %w", code, genapi.ErrFoodNotFound)
}

func (s *stubFoodAPI) GenerateNutrition(ctx context.Context, req genapi.NutritionRequest) (*genapi.NutritionResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFoodAPI) GenerateWorkout(ctx context.Context, req genapi.WorkoutRequest) (*genapi.WorkoutResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFoodAPI) GenerateStages(ctx context.Context, avatar genapi.Avatar) (*genapi.StagesResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFoodAPI) Available(ctx context.Context) bool { return true }

type mealFixture struct {
	svc   service.MealService
	meals repository.MealRepo
	foods repository.FoodRepo
	api   *stubFoodAPI
}

func newMealFixture(t *testing.T) *mealFixture {
	t.Helper()
	conn := testutil.NewTestDB(t)
	api := &stubFoodAPI{barcodeFoods: map[string]*genapi.BarcodeFood{}}
	meals := repository.NewSQLiteMealRepo(conn)
	foods := repository.NewSQLiteFoodRepo(conn)
	svc := service.NewMealService(meals, foods, testutil.NewTestUoW(conn), api)
	return &mealFixture{svc: svc, meals: meals, foods: foods, api: api}
}

func TestLogManual(t *testing.T) {
	f := newMealFixture(t)

	m := &domain.MealLog{Name: "Oatmeal with banana", Calories: 350}
	require.NoError(t, f.svc.LogManual(context.Background(), m))
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, domain.MealManual, m.Source)

	recent, err := f.svc.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Oatmeal with banana", recent[0].Name)
}

func TestLogManual_Validation(t *testing.T) {
	f := newMealFixture(t)

	err := f.svc.LogManual(context.Background(), &domain.MealLog{Calories: 100})
	assert.ErrorContains(t, err, "name is required")

	err = f.svc.LogManual(context.Background(), &domain.MealLog{Name: "x", Calories: -5})
	assert.ErrorContains(t, err, "must not be negative")
}

func TestLogFromPhoto(t *testing.T) {
	f := newMealFixture(t)
	f.api.analysis = &genapi.MealAnalysis{
		Name: "Caesar salad", Calories: 520,
		ProteinG: 28, CarbsG: 18, FatG: 36, Confidence: 0.82,
	}

	m, err := f.svc.LogFromPhoto(context.Background(), []byte("img"), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, "Caesar salad", m.Name)
	assert.Equal(t, domain.MealPhoto, m.Source)
	assert.Equal(t, 520.0, m.Calories)
	assert.Contains(t, m.Note, "82%")
}

func TestLogFromPhoto_AnalysisFailure(t *testing.T) {
	f := newMealFixture(t)
	f.api.analysisErr = fmt.Errorf("%w: no JSON object found", genapi.ErrBadResponse)

	_, err := f.svc.LogFromPhoto(context.Background(), []byte("img"), time.Now().UTC())
	assert.ErrorIs(t, err, genapi.ErrBadResponse)

	recent, _ := f.svc.ListRecent(context.Background(), 1)
	assert.Empty(t, recent, "a failed analysis logs nothing")
}

func TestLogFromBarcode_CacheHit(t *testing.T) {
	f := newMealFixture(t)
	require.NoError(t, f.foods.Upsert(context.Background(), &domain.Food{
		ID: "f1", Name: "Greek Yogurt 5%", Barcode: "7290004127342",
		CaloriesPer100: 97,
		MacrosPer100:   domain.Macros{ProteinG: 9, CarbsG: 3.9, FatG: 5},
		CreatedAt:      time.Now().UTC(),
	}))

	m, err := f.svc.LogFromBarcode(context.Background(), "7290004127342", 200, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, domain.MealBarcode, m.Source)
	assert.InDelta(t, 194, m.Calories, 0.01, "per-100g values scale to the portion")
	assert.InDelta(t, 18, m.Macros.ProteinG, 0.01)
	assert.Equal(t, 0, f.api.barcodeCalls, "a cached barcode makes no remote call")
}

func TestLogFromBarcode_RemoteFallbackCaches(t *testing.T) {
	f := newMealFixture(t)
	f.api.barcodeFoods["4000345677891"] = &genapi.BarcodeFood{
		Name: "Dark Chocolate 85%", Brand: "Lindt", Barcode: "4000345677891",
		CaloriesPer100: 584, ProteinPer100: 9.5, CarbsPer100: 19, FatPer100: 46,
	}

	m, err := f.svc.LogFromBarcode(context.Background(), "4000345677891", 25, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, f.api.barcodeCalls)
	assert.InDelta(t, 146, m.Calories, 0.01)

	// Second lookup is served from the local cache.
	_, err = f.svc.LogFromBarcode(context.Background(), "4000345677891", 25, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, f.api.barcodeCalls)

	cached, err := f.foods.GetByBarcode(context.Background(), "4000345677891")
	require.NoError(t, err)
	assert.Equal(t, "Dark Chocolate 85%", cached.Name)
}

func TestLogFromBarcode_UnknownCode(t *testing.T) {
	f := newMealFixture(t)

	_, err := f.svc.LogFromBarcode(context.Background(), "0000000000000", 100, time.Now().UTC())
	assert.ErrorIs(t, err, genapi.ErrFoodNotFound)

	recent, _ := f.svc.ListRecent(context.Background(), 1)
	assert.Empty(t, recent)
}

func TestLogFromBarcode_InvalidGrams(t *testing.T) {
	f := newMealFixture(t)
	_, err := f.svc.LogFromBarcode(context.Background(), "7290004127342", 0, time.Now().UTC())
	assert.ErrorContains(t, err, "grams must be positive")
}

func TestSearchFoods_SeededCatalog(t *testing.T) {
	f := newMealFixture(t)

	foods, err := f.svc.SearchFoods(context.Background(), "oats")
	require.NoError(t, err)
	require.NotEmpty(t, foods)
	assert.Equal(t, "Rolled Oats", foods[0].Name)
}

func TestLogFood_PortionScaling(t *testing.T) {
	f := newMealFixture(t)

	foods, err := f.svc.SearchFoods(context.Background(), "banana")
	require.NoError(t, err)
	require.Len(t, foods, 1)

	m, err := f.svc.LogFood(context.Background(), foods[0], 120, time.Now().UTC())
	require.NoError(t, err)
	assert.InDelta(t, 106.8, m.Calories, 0.01)
	assert.Equal(t, 120.0, m.Grams)
}

func TestDeleteMeal(t *testing.T) {
	f := newMealFixture(t)
	m := &domain.MealLog{Name: "to delete", Calories: 1}
	require.NoError(t, f.svc.LogManual(context.Background(), m))

	require.NoError(t, f.svc.Delete(context.Background(), m.ID))
	recent, _ := f.svc.ListRecent(context.Background(), 1)
	assert.Empty(t, recent)
}
