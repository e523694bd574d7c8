package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
)

// SlideService implements business logic for homepage message slides.
type SlideService struct {
	repo repo.SlideRepo
}

// NewSlideService constructs a SlideService backed by the provided SlideRepo.
func NewSlideService(r repo.SlideRepo) *SlideService {
	return &SlideService{repo: r}
}

// Create validates and persists a new slide.
func (s *SlideService) Create(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error) {
	if err := validateSlideMessage(&slide.Message); err != nil {
		return domain.MessageSlide{}, err
	}

	created, err := s.repo.Create(ctx, slide)
	if err != nil {
		return domain.MessageSlide{}, fmt.Errorf("service.SlideService.Create: %w", err)
	}
	return created, nil
}

// List returns slides in display order. Public callers see active slides
// only; the dashboard passes activeOnly=false to manage the full set.
func (s *SlideService) List(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error) {
	slides, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("service.SlideService.List: %w", err)
	}
	return slides, nil
}

// Update applies the fields set in upd to an existing slide.
func (s *SlideService) Update(ctx context.Context, id uuid.UUID, upd domain.MessageSlideUpdate) (domain.MessageSlide, error) {
	slide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.MessageSlide{}, fmt.Errorf("service.SlideService.Update: %w", err)
	}

	if upd.Message != nil {
		slide.Message = *upd.Message
		if err := validateSlideMessage(&slide.Message); err != nil {
			return domain.MessageSlide{}, err
		}
	}
	if upd.IsActive != nil {
		slide.IsActive = *upd.IsActive
	}
	if upd.SortOrder != nil {
		slide.SortOrder = *upd.SortOrder
	}

	updated, err := s.repo.Update(ctx, slide)
	if err != nil {
		return domain.MessageSlide{}, fmt.Errorf("service.SlideService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a slide.
func (s *SlideService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SlideService.Delete: %w", err)
	}
	return nil
}

// validateSlideMessage trims and bounds a slide message in place.
func validateSlideMessage(message *string) error {
	*message = strings.TrimSpace(*message)
	if *message == "" {
		return fmt.Errorf("service.SlideService: message is required: %w", domain.ErrValidation)
	}
	if utf8.RuneCountInString(*message) > domain.MaxSlideMessageLen {
		return fmt.Errorf("service.SlideService: message exceeds %d characters: %w", domain.MaxSlideMessageLen, domain.ErrValidation)
	}
	return nil
}
