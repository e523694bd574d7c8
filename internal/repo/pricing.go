package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// PricingRepo defines access to the singleton pricing document.
// The two direction tables are stored as JSONB; the row is created on first
// save and overwritten thereafter.
type PricingRepo interface {
	// Get returns the saved pricing document.
	// Returns domain.ErrNotFound when nothing has been saved yet.
	Get(ctx context.Context) (domain.Pricing, error)

	// Upsert creates or overwrites the pricing document and returns it.
	Upsert(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error)
}

// pgPricingRepo is the Postgres implementation of PricingRepo.
type pgPricingRepo struct {
	db db
}

// NewPricingRepo constructs a PricingRepo backed by the provided db connection.
func NewPricingRepo(db db) PricingRepo {
	return &pgPricingRepo{db: db}
}

// Get returns the single pricing row.
func (r *pgPricingRepo) Get(ctx context.Context) (domain.Pricing, error) {
	const q = `SELECT usa_to_nigeria, nigeria_to_usa, updated_at FROM pricing WHERE id = 1`

	result, err := scanPricing(r.db.QueryRow(ctx, q))
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("repo.PricingRepo.Get: %w", err)
	}
	return result, nil
}

// Upsert writes the single pricing row, creating it if absent.
func (r *pgPricingRepo) Upsert(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error) {
	const q = `
		INSERT INTO pricing (id, usa_to_nigeria, nigeria_to_usa)
		VALUES (1, @usa_to_nigeria, @nigeria_to_usa)
		ON CONFLICT (id) DO UPDATE
		SET usa_to_nigeria = EXCLUDED.usa_to_nigeria,
		    nigeria_to_usa = EXCLUDED.nigeria_to_usa,
		    updated_at     = now()
		RETURNING usa_to_nigeria, nigeria_to_usa, updated_at`

	usa, err := json.Marshal(pricing.USAToNigeria)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("repo.PricingRepo.Upsert: marshal: %w", err)
	}
	nga, err := json.Marshal(pricing.NigeriaToUSA)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("repo.PricingRepo.Upsert: marshal: %w", err)
	}

	args := pgx.NamedArgs{"usa_to_nigeria": usa, "nigeria_to_usa": nga}
	result, err := scanPricing(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("repo.PricingRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanPricing maps the JSONB columns back into the domain document.
func scanPricing(s scanner) (domain.Pricing, error) {
	var (
		pricing  domain.Pricing
		usa, nga []byte
	)
	if err := s.Scan(&usa, &nga, &pricing.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Pricing{}, domain.ErrNotFound
		}
		return domain.Pricing{}, err
	}
	if err := json.Unmarshal(usa, &pricing.USAToNigeria); err != nil {
		return domain.Pricing{}, err
	}
	if err := json.Unmarshal(nga, &pricing.NigeriaToUSA); err != nil {
		return domain.Pricing{}, err
	}
	return pricing, nil
}
