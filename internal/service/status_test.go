package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
	"github.com/modestcargo/cargo-api/internal/service"
)

// mockStatusRepo is a hand-written test double for repo.StatusRepo.
type mockStatusRepo struct {
	create    func(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.ShipmentStatus, error)
	getByName func(ctx context.Context, name string) (domain.ShipmentStatus, error)
	list      func(ctx context.Context) ([]domain.ShipmentStatus, error)
	update    func(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStatusRepo) Create(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	return m.create(ctx, status)
}
func (m *mockStatusRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ShipmentStatus, error) {
	return m.getByID(ctx, id)
}
func (m *mockStatusRepo) GetByName(ctx context.Context, name string) (domain.ShipmentStatus, error) {
	return m.getByName(ctx, name)
}
func (m *mockStatusRepo) List(ctx context.Context) ([]domain.ShipmentStatus, error) {
	return m.list(ctx)
}
func (m *mockStatusRepo) Update(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	return m.update(ctx, status)
}
func (m *mockStatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.StatusRepo = (*mockStatusRepo)(nil)

func echoStatusRepo() *mockStatusRepo {
	return &mockStatusRepo{
		create: func(_ context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error) {
			s.ID = uuid.New()
			return s, nil
		},
		update: func(_ context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error) {
			return s, nil
		},
	}
}

func TestStatusService_Create_DefaultsColorAndEmoji(t *testing.T) {
	svc := service.NewStatusService(echoStatusRepo())

	got, err := svc.Create(context.Background(), domain.ShipmentStatus{Name: "In Transit", IsActive: true})

	require.NoError(t, err)
	assert.Equal(t, "gray", got.Color)
	assert.Equal(t, "📍", got.Emoji)
}

func TestStatusService_Create_MissingName(t *testing.T) {
	svc := service.NewStatusService(echoStatusRepo())

	_, err := svc.Create(context.Background(), domain.ShipmentStatus{Name: "  "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusService_Create_UnknownColor(t *testing.T) {
	svc := service.NewStatusService(echoStatusRepo())

	_, err := svc.Create(context.Background(), domain.ShipmentStatus{Name: "Held", Color: "magenta"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusService_Create_DuplicateNameIsValidationError(t *testing.T) {
	r := echoStatusRepo()
	r.create = func(context.Context, domain.ShipmentStatus) (domain.ShipmentStatus, error) {
		return domain.ShipmentStatus{}, domain.ErrConflict
	}
	svc := service.NewStatusService(r)

	_, err := svc.Create(context.Background(), domain.ShipmentStatus{Name: "Delivered"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusService_Update_PartialFields(t *testing.T) {
	id := uuid.New()
	existing := domain.ShipmentStatus{
		ID: id, Name: "Customs", Color: "yellow", Emoji: "🛃", IsActive: true,
	}
	r := echoStatusRepo()
	r.getByID = func(context.Context, uuid.UUID) (domain.ShipmentStatus, error) {
		return existing, nil
	}
	svc := service.NewStatusService(r)

	color := "red"
	got, err := svc.Update(context.Background(), id, domain.ShipmentStatusUpdate{Color: &color})

	require.NoError(t, err)
	assert.Equal(t, "red", got.Color)
	assert.Equal(t, "Customs", got.Name)
	assert.Equal(t, "🛃", got.Emoji)
}

func TestStatusService_Update_NotFound(t *testing.T) {
	r := echoStatusRepo()
	r.getByID = func(context.Context, uuid.UUID) (domain.ShipmentStatus, error) {
		return domain.ShipmentStatus{}, domain.ErrNotFound
	}
	svc := service.NewStatusService(r)

	_, err := svc.Update(context.Background(), uuid.New(), domain.ShipmentStatusUpdate{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatusService_Delete_NotFound(t *testing.T) {
	r := echoStatusRepo()
	r.delete = func(context.Context, uuid.UUID) error { return domain.ErrNotFound }
	svc := service.NewStatusService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
