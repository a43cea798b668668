package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/hikari-salon/reservation-service/internal/domain"
	reservationRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/reservation"
	"github.com/hikari-salon/reservation-service/internal/service/reservations/models"
)

// Service сервис для административной работы с визитами
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	cache           CacheInvalidator
	logger          Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		cache:           cache,
		logger:          logger,
	}
}

// GetByID получает визит по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetReservations получает визиты с фильтрацией по дате, мастеру и статусу.
// Без явного статуса возвращаются только подтверждённые визиты,
// IncludeInactive добавляет отменённые и no-show.
func (s *Service) GetReservations(ctx context.Context, req *models.GetReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := "GetReservations: fetching reservations"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetReservations: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetReservations: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит визит в новый статус.
// Переходы проверяются по машине состояний: COMPLETED терминален,
// CANCELLED и NO_SHOW можно вернуть в CONFIRMED. Восстановление выполняется
// в сериализуемой транзакции с повторной проверкой пересечений по мастеру.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !domain.CanTransition(reservation.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for reservation id=%d",
			reservation.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	if newStatus == domain.StatusConfirmed {
		err = s.restore(ctx, reservation)
	} else {
		err = s.reservationRepo.UpdateStatus(ctx, id, newStatus)
	}

	if err != nil {
		if errors.Is(err, ErrRestoreConflict) {
			return nil, err
		}
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", id)
			return nil, ErrReservationNotFound
		}
		if errors.Is(err, reservationRepo.ErrStaffTimeConflict) {
			s.logger.Warn("UpdateStatus: restore of reservation id=%d conflicts with another reservation", id)
			return nil, ErrRestoreConflict
		}
		s.logger.Error("UpdateStatus: failed to update reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.InvalidateDate(ctx, reservation.Date.Format(domain.DateFormat))
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", id, newStatus)

	reservation.Status = newStatus
	return models.FromDomainReservation(reservation), nil
}

// restore возвращает отменённый или no-show визит в CONFIRMED.
// Выполняется в сериализуемой транзакции: визиты мастера на дату блокируются,
// пересечения пересчитываются заново — слот могли успеть занять.
// Exclusion constraint в хранилище страхует эту же проверку.
func (s *Service) restore(ctx context.Context, reservation *domain.Reservation) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.reservationRepo.GetByFilter(txCtx, domain.ReservationsFilter{
			Date:    &reservation.Date,
			StaffID: &reservation.StaffID,
		})
		if err != nil {
			return fmt.Errorf("restore - fetch staff reservations: %w", err)
		}

		window := reservation.Window()
		for _, other := range existing {
			if other.ID == reservation.ID || !other.CountsForConflict() {
				continue
			}
			if window.Overlaps(other.Window()) {
				return ErrRestoreConflict
			}
		}

		return s.reservationRepo.UpdateStatus(txCtx, reservation.ID, domain.StatusConfirmed)
	})
}
