package testutil

import (
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/google/uuid"
)

// Profile options
type ProfileOption func(*domain.Profile)

func WithGoal(g domain.Goal) ProfileOption {
	return func(p *domain.Profile) {
		p.Goal = g
	}
}

func WithWeight(kg, targetKg float64) ProfileOption {
	return func(p *domain.Profile) {
		p.WeightKg = &kg
		p.TargetWeightKg = &targetKg
	}
}

func WithCalorieTarget(cal int) ProfileOption {
	return func(p *domain.Profile) {
		p.CalorieTarget = &cal
	}
}

// NewTestProfile builds the onboarding scenario profile used across tests:
// a 29-year-old female, 165cm, 68kg aiming for 60kg, light activity,
// weight-loss goal, no dietary restriction.
func NewTestProfile(opts ...ProfileOption) *domain.Profile {
	now := time.Now().UTC()
	age := 29
	height := 165.0
	weight := 68.0
	target := 60.0
	days := 3
	p := &domain.Profile{
		ID:             "default",
		Gender:         domain.GenderFemale,
		Age:            &age,
		HeightCm:       &height,
		WeightKg:       &weight,
		TargetWeightKg: &target,
		Activity:       domain.ActivityLight,
		Goal:           domain.GoalLoss,
		Diet:           domain.DietNone,
		TrainingDays:   &days,
		Experience:     domain.ExperienceBeginner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestMeal builds a manual meal log entry.
func NewTestMeal(name string, calories float64, loggedAt time.Time) *domain.MealLog {
	return &domain.MealLog{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    domain.MealManual,
		Calories:  calories,
		LoggedAt:  loggedAt,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestWeight builds a weight entry.
func NewTestWeight(kg float64, recordedAt time.Time) *domain.WeightEntry {
	return &domain.WeightEntry{
		ID:         uuid.New().String(),
		WeightKg:   kg,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now().UTC(),
	}
}
