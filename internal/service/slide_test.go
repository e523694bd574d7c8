package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
	"github.com/modestcargo/cargo-api/internal/service"
)

// mockSlideRepo is a hand-written test double for repo.SlideRepo.
type mockSlideRepo struct {
	create  func(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.MessageSlide, error)
	list    func(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error)
	update  func(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSlideRepo) Create(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error) {
	return m.create(ctx, slide)
}
func (m *mockSlideRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.MessageSlide, error) {
	return m.getByID(ctx, id)
}
func (m *mockSlideRepo) List(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error) {
	return m.list(ctx, activeOnly)
}
func (m *mockSlideRepo) Update(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error) {
	return m.update(ctx, slide)
}
func (m *mockSlideRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.SlideRepo = (*mockSlideRepo)(nil)

func TestSlideService_Create_TrimsMessage(t *testing.T) {
	r := &mockSlideRepo{
		create: func(_ context.Context, s domain.MessageSlide) (domain.MessageSlide, error) {
			s.ID = uuid.New()
			return s, nil
		},
	}
	svc := service.NewSlideService(r)

	got, err := svc.Create(context.Background(), domain.MessageSlide{
		Message:  "  Free pickup in Houston this month!  ",
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Free pickup in Houston this month!", got.Message)
}

func TestSlideService_Create_EmptyMessage(t *testing.T) {
	svc := service.NewSlideService(&mockSlideRepo{})

	_, err := svc.Create(context.Background(), domain.MessageSlide{Message: "   "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlideService_Create_MessageTooLong(t *testing.T) {
	svc := service.NewSlideService(&mockSlideRepo{})

	_, err := svc.Create(context.Background(), domain.MessageSlide{
		Message: strings.Repeat("x", domain.MaxSlideMessageLen+1),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlideService_List_PassesActiveFilter(t *testing.T) {
	var gotActiveOnly bool
	r := &mockSlideRepo{
		list: func(_ context.Context, activeOnly bool) ([]domain.MessageSlide, error) {
			gotActiveOnly = activeOnly
			return []domain.MessageSlide{}, nil
		},
	}
	svc := service.NewSlideService(r)

	_, err := svc.List(context.Background(), true)

	require.NoError(t, err)
	assert.True(t, gotActiveOnly)
}

func TestSlideService_Update_PartialFields(t *testing.T) {
	id := uuid.New()
	existing := domain.MessageSlide{ID: id, Message: "Old message", IsActive: true, SortOrder: 1}
	r := &mockSlideRepo{
		getByID: func(context.Context, uuid.UUID) (domain.MessageSlide, error) { return existing, nil },
		update: func(_ context.Context, s domain.MessageSlide) (domain.MessageSlide, error) {
			return s, nil
		},
	}
	svc := service.NewSlideService(r)

	active := false
	got, err := svc.Update(context.Background(), id, domain.MessageSlideUpdate{IsActive: &active})

	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Old message", got.Message)
	assert.Equal(t, 1, got.SortOrder)
}

func TestSlideService_Delete_NotFound(t *testing.T) {
	r := &mockSlideRepo{
		delete: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewSlideService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
