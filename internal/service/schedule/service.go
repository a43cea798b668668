package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	calendarRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/calendar"
	staffRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/staff"
	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// Service сервис административного управления графиками и календарём.
// Каждое изменение инвалидирует кэш доступности затронутой даты.
type Service struct {
	staffRepo    StaffRepository
	calendarRepo CalendarRepository
	cache        CacheInvalidator
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	staffRepo StaffRepository,
	calendarRepo CalendarRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:    staffRepo,
		calendarRepo: calendarRepo,
		cache:        cache,
		logger:       logger,
	}
}

// UpsertOverride создает или заменяет разовое изменение графика мастера
func (s *Service) UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("UpsertOverride: staff=%d, date=%s, working=%t",
		req.StaffID, req.Date.Format(domain.DateFormat), req.IsWorking)

	if err := validateOverride(req); err != nil {
		s.logger.Warn("UpsertOverride: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("UpsertOverride: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("UpsertOverride: repository error for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	override, err := s.staffRepo.UpsertOverride(ctx, &domain.ScheduleOverride{
		StaffID:   req.StaffID,
		Date:      req.Date,
		IsWorking: req.IsWorking,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		s.logger.Error("UpsertOverride: failed to upsert override for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, req.Date)

	s.logger.Info("UpsertOverride: successfully saved override id=%d", override.ID)
	return models.FromDomainOverride(override), nil
}

// DeleteOverride удаляет разовое изменение графика мастера
func (s *Service) DeleteOverride(ctx context.Context, staffID int64, date time.Time) error {
	s.logger.Info("DeleteOverride: staff=%d, date=%s", staffID, date.Format(domain.DateFormat))

	if err := s.staffRepo.DeleteOverride(ctx, staffID, date); err != nil {
		if errors.Is(err, staffRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override not found for staff=%d, date=%s",
				staffID, date.Format(domain.DateFormat))
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for staff id=%d: %v", staffID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, date)
	return nil
}

// CreateHoliday создает праздник или техническое закрытие
func (s *Service) CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: date=%s, name=%s", req.Date.Format(domain.DateFormat), req.Name)

	if err := validateHoliday(req); err != nil {
		s.logger.Warn("CreateHoliday: validation failed: %v", err)
		return nil, err
	}

	holiday, err := s.calendarRepo.CreateHoliday(ctx, &domain.Holiday{
		Date:      req.Date,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, req.Date)

	s.logger.Info("CreateHoliday: successfully created holiday id=%d", holiday.ID)
	return models.FromDomainHoliday(holiday), nil
}

// DeleteHoliday удаляет праздник
func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	s.logger.Info("DeleteHoliday: id=%d", id)

	date, err := s.calendarRepo.DeleteHoliday(ctx, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrHolidayNotFound) {
			s.logger.Warn("DeleteHoliday: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("DeleteHoliday: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteHoliday - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, date)
	return nil
}

// CreateSpecialOpenDay открывает салон в выходной по графику день
func (s *Service) CreateSpecialOpenDay(ctx context.Context, req *models.CreateSpecialOpenDayRequest) (*models.SpecialOpenDayResponse, error) {
	s.logger.Info("CreateSpecialOpenDay: date=%s", req.Date.Format(domain.DateFormat))

	if err := validateSpecialOpenDay(req); err != nil {
		s.logger.Warn("CreateSpecialOpenDay: validation failed: %v", err)
		return nil, err
	}

	day, err := s.calendarRepo.CreateSpecialOpenDay(ctx, &domain.SpecialOpenDay{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDuplicateSpecialOpenDay) {
			s.logger.Warn("CreateSpecialOpenDay: day already exists for %s", req.Date.Format(domain.DateFormat))
			return nil, ErrDuplicateSpecialOpenDay
		}
		s.logger.Error("CreateSpecialOpenDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpecialOpenDay - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, req.Date)

	s.logger.Info("CreateSpecialOpenDay: successfully created day id=%d", day.ID)
	return models.FromDomainSpecialOpenDay(day), nil
}

// DeleteSpecialOpenDay удаляет особый день
func (s *Service) DeleteSpecialOpenDay(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSpecialOpenDay: id=%d", id)

	date, err := s.calendarRepo.DeleteSpecialOpenDay(ctx, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrSpecialOpenDayNotFound) {
			s.logger.Warn("DeleteSpecialOpenDay: day id=%d not found", id)
			return ErrSpecialOpenDayNotFound
		}
		s.logger.Error("DeleteSpecialOpenDay: repository error for day id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSpecialOpenDay - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, date)
	return nil
}

// invalidate сбрасывает кэш доступности затронутой даты
func (s *Service) invalidate(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateDate(ctx, date.Format(domain.DateFormat))
}

// Валидация

func validateOverride(req *models.UpsertOverrideRequest) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.IsWorking {
		if req.StartTime.IsZero() || req.EndTime.IsZero() {
			return fmt.Errorf("%w: working override requires startTime and endTime", ErrInvalidInput)
		}
		return validateTimeRange(req.StartTime, req.EndTime)
	}

	if !req.StartTime.IsZero() || !req.EndTime.IsZero() {
		return fmt.Errorf("%w: day-off override cannot have times", ErrInvalidInput)
	}
	return nil
}

func validateHoliday(req *models.CreateHolidayRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return validateOptionalRange(req.StartTime, req.EndTime)
}

func validateSpecialOpenDay(req *models.CreateSpecialOpenDayRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return validateOptionalRange(req.StartTime, req.EndTime)
}

// validateOptionalRange требует либо оба времени, либо ни одного
func validateOptionalRange(start, end types.TimeString) error {
	if start.IsZero() && end.IsZero() {
		return nil
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}
	return validateTimeRange(start, end)
}

func validateTimeRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
