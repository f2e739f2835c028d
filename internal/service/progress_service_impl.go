package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/repository"
)

// weightTrendWindow is the lookback for the dashboard's weight delta.
const weightTrendWindow = 7 * 24 * time.Hour

type progressService struct {
	meals    repository.MealRepo
	weights  repository.WeightRepo
	profiles repository.ProfileRepo
	observer UseCaseObserver
}

func NewProgressService(
	meals repository.MealRepo,
	weights repository.WeightRepo,
	profiles repository.ProfileRepo,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		meals:    meals,
		weights:  weights,
		profiles: profiles,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) Dashboard(ctx context.Context, now time.Time) (*DashboardData, error) {
	var data *DashboardData
	err := observe(ctx, s.observer, "progress.dashboard", nil, func() error {
		meals, err := s.meals.ListSince(ctx, now.AddDate(0, 0, -30))
		if err != nil {
			return err
		}
		weights, err := s.weights.ListSince(ctx, now.AddDate(0, 0, -30))
		if err != nil {
			return err
		}

		days := domain.SummarizeMeals(meals)
		data = &DashboardData{
			Days:        days,
			Streak:      domain.LoggingStreak(days, now),
			WeightTrend: domain.WeightTrend(weights, weightTrendWindow, now),
		}

		today := now.Truncate(24 * time.Hour)
		for _, d := range days {
			if sameDay(d.Date, now) {
				data.Today = d
				break
			}
		}
		if data.Today.Date.IsZero() {
			data.Today = domain.DailySummary{Date: today}
		}

		if len(weights) > 0 {
			latest := weights[0]
			for _, w := range weights {
				if w.RecordedAt.After(latest.RecordedAt) {
					latest = w
				}
			}
			data.LatestWeight = latest
		}

		profile, err := s.profiles.Get(ctx)
		if err == nil {
			data.Profile = profile
			if profile.CalorieTarget != nil {
				data.CalorieTarget = *profile.CalorieTarget
			}
		}
		return nil
	})
	return data, err
}

func (s *progressService) LogWeight(ctx context.Context, kg float64, recordedAt time.Time) (*domain.WeightEntry, error) {
	if kg <= 0 || kg > 500 {
		return nil, fmt.Errorf("weight %gkg is out of range", kg)
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	entry := &domain.WeightEntry{
		ID:         uuid.New().String(),
		WeightKg:   kg,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.weights.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *progressService) ListWeights(ctx context.Context, days int) ([]*domain.WeightEntry, error) {
	if days <= 0 {
		days = 30
	}
	return s.weights.ListSince(ctx, time.Now().UTC().AddDate(0, 0, -days))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
