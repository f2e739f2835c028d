package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/genapi"
	"github.com/adriancosta/fitflow/internal/repository"
)

type mealService struct {
	meals    repository.MealRepo
	foods    repository.FoodRepo
	uow      db.UnitOfWork
	api      genapi.Client
	observer UseCaseObserver
}

func NewMealService(
	meals repository.MealRepo,
	foods repository.FoodRepo,
	uow db.UnitOfWork,
	api genapi.Client,
	observers ...UseCaseObserver,
) MealService {
	return &mealService{
		meals:    meals,
		foods:    foods,
		uow:      uow,
		api:      api,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *mealService) LogManual(ctx context.Context, m *domain.MealLog) error {
	return observe(ctx, s.observer, "meal.log_manual", nil, func() error {
		if m.Name == "" {
			return fmt.Errorf("meal name is required")
		}
		if m.Calories < 0 {
			return fmt.Errorf("calories must not be negative")
		}
		fillMealDefaults(m, domain.MealManual)
		return s.meals.Create(ctx, m)
	})
}

func (s *mealService) LogFromPhoto(ctx context.Context, image []byte, loggedAt time.Time) (*domain.MealLog, error) {
	var logged *domain.MealLog
	err := observe(ctx, s.observer, "meal.log_photo", map[string]any{"image_bytes": len(image)}, func() error {
		analysis, err := s.api.AnalyzeMealPhoto(ctx, image)
		if err != nil {
			return fmt.Errorf("analyzing photo: %w", err)
		}

		m := &domain.MealLog{
			Name:     analysis.Name,
			Calories: analysis.Calories,
			Macros: domain.Macros{
				ProteinG: analysis.ProteinG,
				CarbsG:   analysis.CarbsG,
				FatG:     analysis.FatG,
			},
			Note:     fmt.Sprintf("photo estimate, confidence %.0f%%", analysis.Confidence*100),
			LoggedAt: loggedAt,
		}
		fillMealDefaults(m, domain.MealPhoto)
		if err := s.meals.Create(ctx, m); err != nil {
			return err
		}
		logged = m
		return nil
	})
	return logged, err
}

func (s *mealService) LogFromBarcode(ctx context.Context, code string, grams float64, loggedAt time.Time) (*domain.MealLog, error) {
	var logged *domain.MealLog
	err := observe(ctx, s.observer, "meal.log_barcode", map[string]any{"barcode": code}, func() error {
		if grams <= 0 {
			return fmt.Errorf("portion grams must be positive")
		}

		food, err := s.foods.GetByBarcode(ctx, code)
		if err == nil {
			m := food.Portion(grams, domain.MealBarcode)
			m.LoggedAt = loggedAt
			fillMealDefaults(&m, domain.MealBarcode)
			if err := s.meals.Create(ctx, &m); err != nil {
				return err
			}
			logged = &m
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		remote, err := s.api.LookupBarcode(ctx, code)
		if err != nil {
			return fmt.Errorf("looking up barcode %s: %w", code, err)
		}
		food = &domain.Food{
			ID:             uuid.New().String(),
			Name:           remote.Name,
			Brand:          remote.Brand,
			Barcode:        code,
			CaloriesPer100: remote.CaloriesPer100,
			MacrosPer100: domain.Macros{
				ProteinG: remote.ProteinPer100,
				CarbsG:   remote.CarbsPer100,
				FatG:     remote.FatPer100,
			},
			CreatedAt: time.Now().UTC(),
		}

		m := food.Portion(grams, domain.MealBarcode)
		m.LoggedAt = loggedAt
		fillMealDefaults(&m, domain.MealBarcode)

		// The food cache entry and the meal land together or not at all.
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := repository.NewSQLiteFoodRepo(tx).Upsert(ctx, food); err != nil {
				return err
			}
			return repository.NewSQLiteMealRepo(tx).Create(ctx, &m)
		})
		if err != nil {
			return err
		}
		logged = &m
		return nil
	})
	return logged, err
}

func (s *mealService) LogFood(ctx context.Context, food *domain.Food, grams float64, loggedAt time.Time) (*domain.MealLog, error) {
	if grams <= 0 {
		return nil, fmt.Errorf("portion grams must be positive")
	}
	m := food.Portion(grams, domain.MealSearch)
	m.LoggedAt = loggedAt
	fillMealDefaults(&m, m.Source)
	if err := s.meals.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *mealService) SearchFoods(ctx context.Context, query string) ([]*domain.Food, error) {
	return s.foods.Search(ctx, query, 20)
}

func (s *mealService) ListRecent(ctx context.Context, days int) ([]*domain.MealLog, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.meals.ListSince(ctx, since)
}

func (s *mealService) Delete(ctx context.Context, id string) error {
	return s.meals.Delete(ctx, id)
}

func fillMealDefaults(m *domain.MealLog, source domain.MealSource) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Source == "" {
		m.Source = source
	}
	if m.LoggedAt.IsZero() {
		m.LoggedAt = time.Now().UTC()
	}
	m.CreatedAt = time.Now().UTC()
}
