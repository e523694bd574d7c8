package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modestcargo/cargo-api/internal/domain"
)

func TestListUsers_ParsesRolesFilter(t *testing.T) {
	h := newTestRouter(serverMocks{users: &mockUserService{
		listByRolesFn: func(_ context.Context, roles []string) ([]domain.User, error) {
			assert.Equal(t, []string{"admin", "staff-member"}, roles)
			return []domain.User{{FirstName: "Bisi", Role: domain.RoleAdmin}}, nil
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/users?roles=admin,staff-member", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	users := env["users"].([]any)
	require.Len(t, users, 1)
}

func TestListUsers_NoFilterPassesNil(t *testing.T) {
	h := newTestRouter(serverMocks{users: &mockUserService{
		listByRolesFn: func(_ context.Context, roles []string) ([]domain.User, error) {
			assert.Nil(t, roles)
			return []domain.User{}, nil
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateUser_Returns201(t *testing.T) {
	h := newTestRouter(serverMocks{users: &mockUserService{
		createFn: func(_ context.Context, u domain.User) (domain.User, error) {
			assert.Equal(t, "bisi@modestcargo.com", u.Email)
			u.ID = uuid.New()
			return u, nil
		},
	}})

	rec := doJSON(t, h, http.MethodPost, "/users", `{
		"firstName": "Bisi",
		"lastName": "Okafor",
		"email": "bisi@modestcargo.com",
		"role": "admin"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	user := env["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])
}
