package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// StatusRepo defines the persistence operations for the shipment status catalog.
type StatusRepo interface {
	// Create inserts a new catalog entry.
	// Returns domain.ErrConflict if the name is already taken.
	Create(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error)

	// GetByID retrieves a catalog entry by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ShipmentStatus, error)

	// GetByName retrieves a catalog entry by its unique name.
	GetByName(ctx context.Context, name string) (domain.ShipmentStatus, error)

	// List returns all catalog entries, newest first.
	List(ctx context.Context) ([]domain.ShipmentStatus, error)

	// Update overwrites a catalog entry's mutable fields.
	// Returns domain.ErrConflict on a name collision.
	Update(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error)

	// Delete removes a catalog entry. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgStatusRepo is the Postgres implementation of StatusRepo.
type pgStatusRepo struct {
	db db
}

// NewStatusRepo constructs a StatusRepo backed by the provided db connection.
func NewStatusRepo(db db) StatusRepo {
	return &pgStatusRepo{db: db}
}

// Create inserts a new catalog row.
func (r *pgStatusRepo) Create(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	const q = `
		INSERT INTO shipment_statuses (name, color, emoji, description, is_active)
		VALUES (@name, @color, @emoji, @description, @is_active)
		RETURNING id, name, color, emoji, description, is_active, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":        status.Name,
		"color":       status.Color,
		"emoji":       status.Emoji,
		"description": status.Description,
		"is_active":   status.IsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStatus(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ShipmentStatus{}, fmt.Errorf("repo.StatusRepo.Create: %w", domain.ErrConflict)
		}
		return domain.ShipmentStatus{}, fmt.Errorf("repo.StatusRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a catalog row by primary key.
func (r *pgStatusRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ShipmentStatus, error) {
	const q = `
		SELECT id, name, color, emoji, description, is_active, created_at, updated_at
		FROM shipment_statuses
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStatus(row)
	if err != nil {
		return domain.ShipmentStatus{}, fmt.Errorf("repo.StatusRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByName retrieves a catalog row by its unique name.
func (r *pgStatusRepo) GetByName(ctx context.Context, name string) (domain.ShipmentStatus, error) {
	const q = `
		SELECT id, name, color, emoji, description, is_active, created_at, updated_at
		FROM shipment_statuses
		WHERE name = @name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanStatus(row)
	if err != nil {
		return domain.ShipmentStatus{}, fmt.Errorf("repo.StatusRepo.GetByName: %w", err)
	}
	return result, nil
}

// List returns all catalog rows, newest first.
func (r *pgStatusRepo) List(ctx context.Context) ([]domain.ShipmentStatus, error) {
	const q = `
		SELECT id, name, color, emoji, description, is_active, created_at, updated_at
		FROM shipment_statuses
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StatusRepo.List: %w", err)
	}
	defer rows.Close()

	statuses := []domain.ShipmentStatus{}
	for rows.Next() {
		status, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StatusRepo.List: scan: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatusRepo.List: rows: %w", err)
	}
	return statuses, nil
}

// Update overwrites a catalog row's mutable fields.
func (r *pgStatusRepo) Update(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	const q = `
		UPDATE shipment_statuses
		SET name        = @name,
		    color       = @color,
		    emoji       = @emoji,
		    description = @description,
		    is_active   = @is_active,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, name, color, emoji, description, is_active, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          status.ID,
		"name":        status.Name,
		"color":       status.Color,
		"emoji":       status.Emoji,
		"description": status.Description,
		"is_active":   status.IsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStatus(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ShipmentStatus{}, fmt.Errorf("repo.StatusRepo.Update: %w", domain.ErrConflict)
		}
		return domain.ShipmentStatus{}, fmt.Errorf("repo.StatusRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a catalog row by primary key.
func (r *pgStatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM shipment_statuses WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.StatusRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StatusRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanStatus maps a single database row into a domain.ShipmentStatus.
func scanStatus(s scanner) (domain.ShipmentStatus, error) {
	var (
		status domain.ShipmentStatus
		id     pgtype.UUID
	)
	err := s.Scan(&id, &status.Name, &status.Color, &status.Emoji,
		&status.Description, &status.IsActive, &status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ShipmentStatus{}, domain.ErrNotFound
		}
		return domain.ShipmentStatus{}, err
	}
	status.ID = uuid.UUID(id.Bytes)
	return status, nil
}
