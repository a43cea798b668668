package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikari-salon/reservation-service/internal/domain"
	reservationRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/reservation"
	"github.com/hikari-salon/reservation-service/internal/service/reservations/models"
)

type mockReservationRepo struct {
	byID          map[int64]*domain.Reservation
	byFilter      []*domain.Reservation
	statusUpdates map[int64]domain.ReservationStatus
	updateErr     error
}

func newMockRepo() *mockReservationRepo {
	return &mockReservationRepo{
		byID:          map[int64]*domain.Reservation{},
		statusUpdates: map[int64]domain.ReservationStatus{},
	}
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockReservationRepo) GetByFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return m.byFilter, nil
}

func (m *mockReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.statusUpdates[id] = status
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockCacheInvalidator struct {
	invalidated []string
}

func (m *mockCacheInvalidator) InvalidateDate(_ context.Context, date string) {
	m.invalidated = append(m.invalidated, date)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func confirmedReservation(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID:                   id,
		CustomerID:           7,
		StaffID:              1,
		Date:                 testDate,
		StartTime:            "14:00",
		EndTime:              "15:00",
		TotalPrice:           5000,
		TotalDurationMinutes: 60,
		Status:               domain.StatusConfirmed,
		PaymentMethod:        "onsite",
	}
}

func TestService_GetByID(t *testing.T) {
	repo := newMockRepo()
	repo.byID[1] = confirmedReservation(1)
	svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2026-09-15", resp.Date)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_GetReservations(t *testing.T) {
	repo := newMockRepo()
	repo.byFilter = []*domain.Reservation{confirmedReservation(1), confirmedReservation(2)}
	svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

	t.Run("lists reservations", func(t *testing.T) {
		resp, err := svc.GetReservations(context.Background(), &models.GetReservationsRequest{Date: &testDate})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		bad := "unknown"
		_, err := svc.GetReservations(context.Background(), &models.GetReservationsRequest{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("confirmed to completed", func(t *testing.T) {
		repo := newMockRepo()
		repo.byID[1] = confirmedReservation(1)
		cache := &mockCacheInvalidator{}
		svc := NewService(repo, passthroughTxManager{}, cache, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[1])
		assert.Equal(t, []string{"2026-09-15"}, cache.invalidated)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newMockRepo()
		repo.byID[1] = confirmedReservation(1)
		svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newMockRepo()
		svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		repo := newMockRepo()
		done := confirmedReservation(1)
		done.Status = domain.StatusCompleted
		repo.byID[1] = done
		svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("restore cancelled to confirmed", func(t *testing.T) {
		repo := newMockRepo()
		cancelled := confirmedReservation(1)
		cancelled.Status = domain.StatusCancelled
		repo.byID[1] = cancelled
		// Чужой визит встык не мешает восстановлению
		other := confirmedReservation(2)
		other.StartTime = "15:00"
		other.EndTime = "16:00"
		repo.byFilter = []*domain.Reservation{cancelled, other}

		cache := &mockCacheInvalidator{}
		svc := NewService(repo, passthroughTxManager{}, cache, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
		assert.Equal(t, []string{"2026-09-15"}, cache.invalidated)
	})

	t.Run("restore conflicts with new reservation", func(t *testing.T) {
		repo := newMockRepo()
		noShow := confirmedReservation(1)
		noShow.Status = domain.StatusNoShow
		repo.byID[1] = noShow
		// Слот успели занять другим визитом
		taken := confirmedReservation(2)
		taken.StartTime = "14:30"
		taken.EndTime = "15:30"
		repo.byFilter = []*domain.Reservation{noShow, taken}

		svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrRestoreConflict)
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("restore ignores cancelled neighbours", func(t *testing.T) {
		repo := newMockRepo()
		cancelled := confirmedReservation(1)
		cancelled.Status = domain.StatusCancelled
		repo.byID[1] = cancelled
		neighbour := confirmedReservation(2)
		neighbour.Status = domain.StatusCancelled
		neighbour.StartTime = "14:00"
		neighbour.EndTime = "15:00"
		repo.byFilter = []*domain.Reservation{cancelled, neighbour}

		svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.NoError(t, err)
	})

	t.Run("exclusion constraint maps to restore conflict", func(t *testing.T) {
		repo := newMockRepo()
		cancelled := confirmedReservation(1)
		cancelled.Status = domain.StatusCancelled
		repo.byID[1] = cancelled
		repo.byFilter = []*domain.Reservation{cancelled}
		repo.updateErr = reservationRepo.ErrStaffTimeConflict

		svc := NewService(repo, passthroughTxManager{}, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrRestoreConflict)
	})
}
