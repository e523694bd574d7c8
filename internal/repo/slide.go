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

// SlideRepo defines the persistence operations for homepage message slides.
type SlideRepo interface {
	// Create inserts a new slide and returns the persisted record.
	Create(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error)

	// GetByID retrieves a slide by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.MessageSlide, error)

	// List returns slides ordered by sort order. When activeOnly is true,
	// inactive slides are excluded (the public homepage view).
	List(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error)

	// Update overwrites a slide's mutable fields and returns the updated record.
	Update(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error)

	// Delete removes a slide. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgSlideRepo is the Postgres implementation of SlideRepo.
type pgSlideRepo struct {
	db db
}

// NewSlideRepo constructs a SlideRepo backed by the provided db connection.
func NewSlideRepo(db db) SlideRepo {
	return &pgSlideRepo{db: db}
}

// Create inserts a new slide row.
func (r *pgSlideRepo) Create(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error) {
	const q = `
		INSERT INTO message_slides (message, is_active, sort_order)
		VALUES (@message, @is_active, @sort_order)
		RETURNING id, message, is_active, sort_order, created_at, updated_at`

	args := pgx.NamedArgs{
		"message":    slide.Message,
		"is_active":  slide.IsActive,
		"sort_order": slide.SortOrder,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSlide(row)
	if err != nil {
		return domain.MessageSlide{}, fmt.Errorf("repo.SlideRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a slide by primary key.
func (r *pgSlideRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.MessageSlide, error) {
	const q = `
		SELECT id, message, is_active, sort_order, created_at, updated_at
		FROM message_slides
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSlide(row)
	if err != nil {
		return domain.MessageSlide{}, fmt.Errorf("repo.SlideRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns slides ordered by sort order, then creation time.
func (r *pgSlideRepo) List(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error) {
	const q = `
		SELECT id, message, is_active, sort_order, created_at, updated_at
		FROM message_slides
		WHERE (NOT @active_only::bool) OR is_active
		ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"active_only": activeOnly})
	if err != nil {
		return nil, fmt.Errorf("repo.SlideRepo.List: %w", err)
	}
	defer rows.Close()

	slides := []domain.MessageSlide{}
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SlideRepo.List: scan: %w", err)
		}
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SlideRepo.List: rows: %w", err)
	}
	return slides, nil
}

// Update overwrites a slide's mutable fields.
func (r *pgSlideRepo) Update(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error) {
	const q = `
		UPDATE message_slides
		SET message    = @message,
		    is_active  = @is_active,
		    sort_order = @sort_order,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, message, is_active, sort_order, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":         slide.ID,
		"message":    slide.Message,
		"is_active":  slide.IsActive,
		"sort_order": slide.SortOrder,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSlide(row)
	if err != nil {
		return domain.MessageSlide{}, fmt.Errorf("repo.SlideRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a slide by primary key.
func (r *pgSlideRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM message_slides WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SlideRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SlideRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanSlide maps a single database row into a domain.MessageSlide.
func scanSlide(s scanner) (domain.MessageSlide, error) {
	var (
		slide domain.MessageSlide
		id    pgtype.UUID
	)
	err := s.Scan(&id, &slide.Message, &slide.IsActive, &slide.SortOrder,
		&slide.CreatedAt, &slide.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MessageSlide{}, domain.ErrNotFound
		}
		return domain.MessageSlide{}, err
	}
	slide.ID = uuid.UUID(id.Bytes)
	return slide, nil
}
