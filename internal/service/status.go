package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
)

// StatusService implements business logic for the shipment status catalog.
// The catalog drives dashboard display only; quote statuses remain free-form
// strings and are never validated against it.
type StatusService struct {
	repo repo.StatusRepo
}

// NewStatusService constructs a StatusService backed by the provided StatusRepo.
func NewStatusService(r repo.StatusRepo) *StatusService {
	return &StatusService{repo: r}
}

// Create validates and persists a new catalog entry. Names are unique; a
// duplicate surfaces as domain.ErrValidation so the handler reports it as a
// bad request rather than a server fault.
func (s *StatusService) Create(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	if err := validateStatus(&status); err != nil {
		return domain.ShipmentStatus{}, err
	}

	created, err := s.repo.Create(ctx, status)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ShipmentStatus{}, fmt.Errorf("service.StatusService.Create: name %q already exists: %w", status.Name, domain.ErrValidation)
		}
		return domain.ShipmentStatus{}, fmt.Errorf("service.StatusService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single catalog entry.
func (s *StatusService) GetByID(ctx context.Context, id uuid.UUID) (domain.ShipmentStatus, error) {
	status, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ShipmentStatus{}, fmt.Errorf("service.StatusService.GetByID: %w", err)
	}
	return status, nil
}

// List returns all catalog entries, newest first.
func (s *StatusService) List(ctx context.Context) ([]domain.ShipmentStatus, error) {
	statuses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatusService.List: %w", err)
	}
	return statuses, nil
}

// Update applies the fields set in upd to an existing entry.
func (s *StatusService) Update(ctx context.Context, id uuid.UUID, upd domain.ShipmentStatusUpdate) (domain.ShipmentStatus, error) {
	status, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ShipmentStatus{}, fmt.Errorf("service.StatusService.Update: %w", err)
	}

	if upd.Name != nil {
		status.Name = *upd.Name
	}
	if upd.Color != nil {
		status.Color = *upd.Color
	}
	if upd.Emoji != nil {
		status.Emoji = *upd.Emoji
	}
	if upd.Description != nil {
		status.Description = *upd.Description
	}
	if upd.IsActive != nil {
		status.IsActive = *upd.IsActive
	}

	if err := validateStatus(&status); err != nil {
		return domain.ShipmentStatus{}, err
	}

	updated, err := s.repo.Update(ctx, status)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ShipmentStatus{}, fmt.Errorf("service.StatusService.Update: name %q already exists: %w", status.Name, domain.ErrValidation)
		}
		return domain.ShipmentStatus{}, fmt.Errorf("service.StatusService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a catalog entry. Quotes already carrying the status keep
// their free-form string.
func (s *StatusService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.StatusService.Delete: %w", err)
	}
	return nil
}

// validateStatus normalizes and checks one catalog entry in place.
func validateStatus(status *domain.ShipmentStatus) error {
	status.Name = strings.TrimSpace(status.Name)
	if status.Name == "" {
		return fmt.Errorf("service.StatusService: name is required: %w", domain.ErrValidation)
	}
	if status.Color == "" {
		status.Color = "gray"
	}
	if !domain.ValidStatusColor(status.Color) {
		return fmt.Errorf("service.StatusService: unknown color %q: %w", status.Color, domain.ErrValidation)
	}
	if status.Emoji == "" {
		status.Emoji = "📍"
	}
	return nil
}
