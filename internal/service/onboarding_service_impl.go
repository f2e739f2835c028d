package service

import (
	"context"
	"errors"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/repository"
)

type onboardingService struct {
	profiles repository.ProfileRepo
	observer UseCaseObserver
}

func NewOnboardingService(profiles repository.ProfileRepo, observers ...UseCaseObserver) OnboardingService {
	return &onboardingService{
		profiles: profiles,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *onboardingService) SaveProfile(ctx context.Context, p *domain.Profile) error {
	return observe(ctx, s.observer, "onboarding.save_profile", nil, func() error {
		now := time.Now().UTC()
		existing, err := s.profiles.Get(ctx)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if existing != nil {
			p.CreatedAt = existing.CreatedAt
		} else {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		return s.profiles.Upsert(ctx, p)
	})
}

func (s *onboardingService) GetProfile(ctx context.Context) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
