package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
)

// PricingService implements business logic for the singleton pricing document.
type PricingService struct {
	repo repo.PricingRepo
}

// NewPricingService constructs a PricingService backed by the provided PricingRepo.
func NewPricingService(r repo.PricingRepo) *PricingService {
	return &PricingService{repo: r}
}

// Get returns the saved pricing document, or the default empty structure when
// nothing has been saved yet. The marketing page always gets tables to render.
func (s *PricingService) Get(ctx context.Context) (domain.Pricing, error) {
	pricing, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultPricing(), nil
		}
		return domain.Pricing{}, fmt.Errorf("service.PricingService.Get: %w", err)
	}
	return pricing, nil
}

// Save overwrites the pricing document. Both direction tables must carry
// headers; row content is free-form and left to the dashboard editor.
func (s *PricingService) Save(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error) {
	if len(pricing.USAToNigeria.Headers) == 0 || len(pricing.NigeriaToUSA.Headers) == 0 {
		return domain.Pricing{}, fmt.Errorf("service.PricingService.Save: both direction tables require headers: %w", domain.ErrValidation)
	}

	saved, err := s.repo.Upsert(ctx, pricing)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("service.PricingService.Save: %w", err)
	}
	return saved, nil
}
