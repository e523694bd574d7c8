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

func TestUserRepo_Create(t *testing.T) {
	r := repo.NewUserRepo(testTx(t))
	ctx := context.Background()

	got, err := r.Create(ctx, domain.User{
		FirstName: "Bisi",
		LastName:  "Okafor",
		Email:     "bisi@modestcargo.com",
		Role:      domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Bisi Okafor", got.Name())
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestUserRepo_Create_DuplicateEmailIsConflict(t *testing.T) {
	r := repo.NewUserRepo(testTx(t))
	ctx := context.Background()

	u := domain.User{FirstName: "Bisi", Email: "bisi@modestcargo.com", Role: domain.RoleAdmin}
	_, err := r.Create(ctx, u)
	require.NoError(t, err)

	_, err = r.Create(ctx, u)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewUserRepo(testTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_ListByRoles_FiltersRoles(t *testing.T) {
	r := repo.NewUserRepo(testTx(t))
	ctx := context.Background()

	for _, u := range []domain.User{
		{FirstName: "A", Email: "a@modestcargo.com", Role: domain.RoleAdmin},
		{FirstName: "B", Email: "b@modestcargo.com", Role: domain.RoleStaff},
		{FirstName: "C", Email: "c@modestcargo.com", Role: "viewer"},
	} {
		_, err := r.Create(ctx, u)
		require.NoError(t, err)
	}

	got, err := r.ListByRoles(ctx, []string{domain.RoleAdmin, domain.RoleStaff})

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, u := range got {
		assert.NotEqual(t, "viewer", u.Role)
	}
}
