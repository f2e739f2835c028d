package service

import (
	"context"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
)

type OnboardingService interface {
	// SaveProfile persists the wizard's answers, creating or replacing
	// the single local profile.
	SaveProfile(ctx context.Context, p *domain.Profile) error
	// GetProfile returns the stored profile, or nil if onboarding has
	// not run yet.
	GetProfile(ctx context.Context) (*domain.Profile, error)
}

type MealService interface {
	LogManual(ctx context.Context, m *domain.MealLog) error
	// LogFromPhoto sends the image to the vision endpoint and logs the
	// returned estimate.
	LogFromPhoto(ctx context.Context, image []byte, loggedAt time.Time) (*domain.MealLog, error)
	// LogFromBarcode resolves the barcode against the local food
	// database first, falling back to the remote lookup, and logs a
	// portion of the matched food.
	LogFromBarcode(ctx context.Context, code string, grams float64, loggedAt time.Time) (*domain.MealLog, error)
	// LogFood logs a portion of an already-resolved food entry.
	LogFood(ctx context.Context, food *domain.Food, grams float64, loggedAt time.Time) (*domain.MealLog, error)
	SearchFoods(ctx context.Context, query string) ([]*domain.Food, error)
	ListRecent(ctx context.Context, days int) ([]*domain.MealLog, error)
	Delete(ctx context.Context, id string) error
}

// DashboardData is everything the dashboard screen renders.
type DashboardData struct {
	Profile       *domain.Profile // nil until onboarding runs
	Today         domain.DailySummary
	Days          []domain.DailySummary
	Streak        int
	WeightTrend   float64 // kg change over the trend window
	LatestWeight  *domain.WeightEntry
	CalorieTarget int // 0 when no target is set
}

type ProgressService interface {
	Dashboard(ctx context.Context, now time.Time) (*DashboardData, error)
	LogWeight(ctx context.Context, kg float64, recordedAt time.Time) (*domain.WeightEntry, error)
	ListWeights(ctx context.Context, days int) ([]*domain.WeightEntry, error)
}

// ImportResult holds the outcome of a food catalog import.
type ImportResult struct {
	Source   string
	Imported int
}

type FoodImportService interface {
	ImportCatalog(ctx context.Context, filePath string) (*ImportResult, error)
}
