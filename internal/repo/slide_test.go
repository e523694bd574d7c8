package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
)

func TestSlideRepo_Create(t *testing.T) {
	r := repo.NewSlideRepo(testTx(t))

	got, err := r.Create(context.Background(), domain.MessageSlide{
		Message:   "Free pickup in Houston this month!",
		IsActive:  true,
		SortOrder: 1,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 1, got.SortOrder)
}

func TestSlideRepo_List_ActiveOnlyFiltersInactive(t *testing.T) {
	r := repo.NewSlideRepo(testTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, domain.MessageSlide{Message: "Visible", IsActive: true, SortOrder: 2})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.MessageSlide{Message: "Hidden", IsActive: false, SortOrder: 1})
	require.NoError(t, err)

	active, err := r.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Visible", active[0].Message)

	all, err := r.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by sort_order, so the inactive slide comes first.
	assert.Equal(t, "Hidden", all[0].Message)
}

func TestSlideRepo_Update(t *testing.T) {
	r := repo.NewSlideRepo(testTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, domain.MessageSlide{Message: "Old", IsActive: true})
	require.NoError(t, err)

	created.Message = "New"
	created.IsActive = false
	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "New", got.Message)
	assert.False(t, got.IsActive)
}

func TestSlideRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewSlideRepo(testTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
