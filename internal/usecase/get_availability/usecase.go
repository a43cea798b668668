package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	staffRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/staff"
	catalogClient "github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	"github.com/hikari-salon/reservation-service/internal/integrations/settingsservice"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// UseCase use case расчёта доступности слотов для записи
type UseCase struct {
	reservationRepo ReservationRepository
	staffRepo       StaffRepository
	calendarRepo    CalendarRepository
	catalogClient   CatalogServiceClient
	settingsClient  SettingsServiceClient
	cache           AvailabilityCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	staffRepo StaffRepository,
	calendarRepo CalendarRepository,
	catalogClient CatalogServiceClient,
	settingsClient SettingsServiceClient,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		staffRepo:       staffRepo,
		calendarRepo:    calendarRepo,
		catalogClient:   catalogClient,
		settingsClient:  settingsClient,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case расчёта доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, menus=%v, staff=%v",
		req.Date.Format(domain.DateFormat), req.MenuIDs, req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	dateStr := req.Date.Format(domain.DateFormat)

	// 2. Снимок настроек салона на время обработки запроса
	settings, err := uc.settingsClient.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Окно бронирования
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 4. Услуги из каталога
	menus, err := uc.getMenus(ctx, req.MenuIDs)
	if err != nil {
		return nil, err
	}

	totalDuration := 0
	var totalPrice int64
	for _, menu := range menus {
		totalDuration += menu.DurationMinutes
		totalPrice += menu.Price
	}

	// 5. Кэш: отдаем рассчитанный ответ, если он ещё актуален
	if uc.cache != nil {
		var cached Response
		if uc.cache.Get(ctx, dateStr, req.MenuIDs, req.StaffID, &cached) {
			uc.logger.Info("GetAvailability: cache hit for date=%s", dateStr)
			return &cached, nil
		}
	}

	// 6. Календарные исключения даты
	calendar, err := uc.calendarRepo.GetDayCalendar(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get day calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to get day calendar: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:                 dateStr,
		DayOfWeek:            req.Date.Weekday().String(),
		TotalDurationMinutes: totalDuration,
		TotalPrice:           totalPrice,
		Slots:                []Slot{},
	}

	// 7. Закрытый день: выходной по графику без особого открытия
	if calendar.IsClosedDate(req.Date, settings.ClosedWeekdays()) {
		uc.logger.Info("GetAvailability: salon is closed on %s", dateStr)
		resp.IsClosed = true
		uc.storeInCache(ctx, dateStr, req, resp)
		return resp, nil
	}

	// 8. Часы работы: особый день с собственными часами заменяет недельные
	openWindow, lastStart, err := uc.resolveBusinessHours(settings, calendar, req.Date, menus)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve business hours: %v", ErrInternal, err)
	}
	if openWindow == nil {
		uc.logger.Info("GetAvailability: no business hours on %s", dateStr)
		resp.IsClosed = true
		uc.storeInCache(ctx, dateStr, req, resp)
		return resp, nil
	}

	// 9. Мастера-кандидаты с расписаниями и визитами на дату
	candidates, err := uc.collectCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	// 10. Минимальное уведомление действует только для сегодняшней даты
	var minStart *types.TimeString
	if isSameDay(req.Date, now) {
		cutoff, err := types.NewTimeString(now).AddMinutes(settings.MinNoticeMinutes)
		if err != nil {
			// Окно уведомления выходит за полночь — на сегодня слотов не осталось
			uc.logger.Info("GetAvailability: notice window passes midnight on %s", dateStr)
			uc.storeInCache(ctx, dateStr, req, resp)
			return resp, nil
		}
		minStart = &cutoff
	}

	// 11. Сетка и доступность
	grid, err := generateGrid(openWindow.Start, openWindow.End, settings.SlotStep())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate grid: %v", ErrInternal, err)
	}

	slots, err := buildSlots(grid, totalDuration, openWindow.End, lastStart, minStart, calendar, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailability: computed %d slots for date=%s", len(slots), dateStr)
	uc.storeInCache(ctx, dateStr, req, resp)

	return resp, nil
}

// getMenus загружает выбранные услуги и проверяет, что все активны
func (uc *UseCase) getMenus(ctx context.Context, menuIDs []int64) ([]*catalogClient.Menu, error) {
	menus, err := uc.catalogClient.GetMenus(ctx, menuIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMenuNotFound) {
			uc.logger.Warn("GetAvailability: some menus not found: %v", menuIDs)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("GetAvailability: failed to get menus: %v", err)
		return nil, fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
	}

	for _, menu := range menus {
		if !menu.IsActive {
			uc.logger.Warn("GetAvailability: menu id=%d is inactive", menu.ID)
			return nil, ErrMenuNotFound
		}
	}

	return menus, nil
}

// resolveBusinessHours возвращает окно работы салона и самое позднее время
// начала визита на дату. nil-окно означает, что салон в этот день не работает.
func (uc *UseCase) resolveBusinessHours(
	settings *settingsservice.Settings,
	calendar domain.DayCalendar,
	date time.Time,
	menus []*catalogClient.Menu,
) (*domain.TimeRange, *types.TimeString, error) {
	hours := settings.HoursFor(date)

	openWindow, err := hours.OpenWindow()
	if err != nil {
		return nil, nil, err
	}

	salonLast, err := hours.LastBookingTime()
	if err != nil {
		return nil, nil, err
	}

	// Особый день с собственными часами заменяет недельное расписание
	if calendar.SpecialOpenDay != nil {
		if special := calendar.SpecialOpenDay.Hours(); special != nil {
			openWindow = special
			salonLast = nil
		}
	}

	if openWindow == nil {
		return nil, nil, nil
	}

	lastStart, err := effectiveLastStart(salonLast, menus)
	if err != nil {
		return nil, nil, err
	}

	return openWindow, lastStart, nil
}

// collectCandidates собирает мастеров, способных выполнить выбранные услуги,
// вместе со сменами и подтверждёнными визитами на дату.
// Кандидаты идут в порядке приоритета автоподбора.
func (uc *UseCase) collectCandidates(ctx context.Context, req *Request) ([]staffCandidate, error) {
	var qualified []*domain.Staff

	if req.StaffID != nil {
		member, err := uc.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailability: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailability: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !member.IsActive {
			uc.logger.Warn("GetAvailability: staff id=%d is inactive", *req.StaffID)
			return nil, ErrStaffNotFound
		}
		if member.Capability.Covers(req.MenuIDs) {
			qualified = append(qualified, member)
		}
	} else {
		active, err := uc.staffRepo.GetActive(ctx)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get active staff: %v", err)
			return nil, fmt.Errorf("%w: failed to get active staff: %v", ErrInternal, err)
		}
		for _, member := range active {
			if member.Capability.Covers(req.MenuIDs) {
				qualified = append(qualified, member)
			}
		}
	}

	if len(qualified) == 0 {
		return nil, nil
	}

	staffIDs := make([]int64, 0, len(qualified))
	for _, member := range qualified {
		staffIDs = append(staffIDs, member.ID)
	}

	schedules, err := uc.staffRepo.GetSchedulesForDate(ctx, staffIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get staff schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff schedules: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetByFilter(ctx, domain.ReservationsFilter{Date: &req.Date})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	byStaff := make(map[int64][]*domain.Reservation)
	for _, r := range reservations {
		byStaff[r.StaffID] = append(byStaff[r.StaffID], r)
	}

	candidates := make([]staffCandidate, 0, len(qualified))
	for _, member := range qualified {
		candidates = append(candidates, staffCandidate{
			staff:        member,
			shift:        domain.ResolveShift(schedules[member.ID], req.Date),
			reservations: byStaff[member.ID],
		})
	}

	return candidates, nil
}

// storeInCache кладёт готовый ответ в кэш, если кэш сконфигурирован
func (uc *UseCase) storeInCache(ctx context.Context, date string, req *Request, resp *Response) {
	if uc.cache == nil {
		return
	}
	uc.cache.Set(ctx, date, req.MenuIDs, req.StaffID, resp)
}
