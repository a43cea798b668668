package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	couponRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/coupon"
	customerRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/customer"
	reservationRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/reservation"
	staffRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/staff"
	catalogClient "github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	"github.com/hikari-salon/reservation-service/internal/integrations/settingsservice"
	"github.com/hikari-salon/reservation-service/internal/service/coupons"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// UseCase use case создания визита.
// Все бизнес-проверки, не требующие финальной сверки пересечений, выполняются
// до открытия транзакции. Внутри сериализуемой транзакции остаются только
// выбор мастера по заблокированным строкам дня, списание лимита купона
// и сама запись.
type UseCase struct {
	reservationRepo ReservationRepository
	staffRepo       StaffRepository
	calendarRepo    CalendarRepository
	customerRepo    CustomerRepository
	couponRepo      CouponRepository
	couponValidator CouponValidator
	catalogClient   CatalogServiceClient
	settingsClient  SettingsServiceClient
	txManager       TransactionManager
	cache           CacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	staffRepo StaffRepository,
	calendarRepo CalendarRepository,
	customerRepo CustomerRepository,
	couponRepo CouponRepository,
	couponValidator CouponValidator,
	catalogClient CatalogServiceClient,
	settingsClient SettingsServiceClient,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		staffRepo:       staffRepo,
		calendarRepo:    calendarRepo,
		customerRepo:    customerRepo,
		couponRepo:      couponRepo,
		couponValidator: couponValidator,
		catalogClient:   catalogClient,
		settingsClient:  settingsClient,
		txManager:       txManager,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: date=%s, time=%s, menus=%v, staff=%v, phone=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.MenuIDs, req.StaffID, req.CustomerPhone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	dateStr := req.Date.Format(domain.DateFormat)

	// 2. Снимок настроек салона
	settings, err := uc.settingsClient.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Окно бронирования и минимальное уведомление
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Date, req.StartTime, now, settings.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
		return nil, err
	}

	// 4. Услуги из каталога и итоги визита
	menus, err := uc.getMenus(ctx, req.MenuIDs)
	if err != nil {
		return nil, err
	}

	totalDuration := 0
	var subtotal int64
	categories := make([]string, 0, len(menus))
	for _, menu := range menus {
		totalDuration += menu.DurationMinutes
		subtotal += menu.Price
		categories = append(categories, menu.Category)
	}

	window, err := domain.NewTimeRange(req.StartTime, totalDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute reservation window: %v", ErrInternal, err)
	}

	// 5. Календарь дня: закрытие по графику и праздничные блоки
	calendar, err := uc.calendarRepo.GetDayCalendar(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get day calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to get day calendar: %v", ErrInternal, err)
	}

	if calendar.IsClosedDate(req.Date, settings.ClosedWeekdays()) {
		uc.logger.Warn("CreateReservation: salon is closed on %s", dateStr)
		return nil, ErrSalonClosed
	}
	if calendar.BlocksWindow(window) {
		uc.logger.Warn("CreateReservation: window %s-%s blocked by holiday on %s",
			window.Start, window.End, dateStr)
		return nil, ErrHolidayBlock
	}

	// 6. Часы работы и время последней записи
	openWindow, lastStart, err := uc.resolveBusinessHours(settings, calendar, req.Date, menus)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to resolve business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve business hours: %v", ErrInternal, err)
	}
	if openWindow == nil {
		uc.logger.Warn("CreateReservation: no business hours on %s", dateStr)
		return nil, ErrSalonClosed
	}
	if !openWindow.Contains(window) {
		uc.logger.Warn("CreateReservation: window %s-%s outside business hours %s-%s",
			window.Start, window.End, openWindow.Start, openWindow.End)
		return nil, ErrOutsideBusinessHours
	}
	if lastStart != nil && req.StartTime.IsAfter(*lastStart) {
		uc.logger.Warn("CreateReservation: start %s past last booking cutoff %s", req.StartTime, *lastStart)
		return nil, ErrPastLastBooking
	}
	if err := validateGridAlignment(req.StartTime, openWindow.Start, settings.SlotStep()); err != nil {
		uc.logger.Warn("CreateReservation: start %s is not on the booking grid", req.StartTime)
		return nil, err
	}

	// 7. Клиент по телефону: определяет статус "первый визит" для купона
	customerID, isFirstTime, err := uc.lookupCustomer(ctx, req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	// Неизвестный телефон не доказывает первый визит: клиент мог бывать
	// в салоне и заявить это сам. Известная карточка клиента авторитетна.
	if customerID == nil && req.IsFirstVisit != nil && !*req.IsFirstVisit {
		isFirstTime = false
	}

	// 8. Предварительная проверка купона. Быстрый отказ до транзакции;
	// авторитетное списание лимита происходит внутри транзакции.
	var coupon *domain.Coupon
	var discount int64
	if req.CouponCode != nil {
		result, err := uc.couponValidator.Validate(ctx, coupons.ValidateInput{
			Code:        *req.CouponCode,
			Subtotal:    subtotal,
			CustomerID:  customerID,
			MenuIDs:     req.MenuIDs,
			Categories:  categories,
			Date:        req.Date,
			StartTime:   req.StartTime,
			IsFirstTime: isFirstTime,
		})
		if err != nil {
			uc.logger.Warn("CreateReservation: coupon %s rejected: %v", *req.CouponCode, err)
			return nil, err
		}
		coupon = result.Coupon
		discount = result.DiscountAmount
	}

	var result *domain.Reservation
	var staffName string

	// 9. Сериализуемая транзакция: выбор мастера по заблокированным визитам
	// дня, списание купона, upsert клиента и запись визита
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Визиты дня с блокировкой строк (FOR UPDATE)
		dayReservations, err := uc.reservationRepo.GetByFilter(txCtx, domain.ReservationsFilter{Date: &req.Date})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get day reservations: %v", err)
			return fmt.Errorf("%w: failed to get day reservations: %v", ErrInternal, err)
		}

		byStaff := make(map[int64][]*domain.Reservation)
		for _, r := range dayReservations {
			byStaff[r.StaffID] = append(byStaff[r.StaffID], r)
		}

		// 9.2. Выбор мастера
		assigned, err := uc.selectStaff(txCtx, req, window, byStaff)
		if err != nil {
			return err
		}
		staffName = assigned.Name

		// 9.3. Списание лимита купона: условный UPDATE гарантирует,
		// что лимит не будет превышен даже при гонке
		if coupon != nil {
			if err := uc.couponRepo.IncrementUsage(txCtx, coupon.ID); err != nil {
				if errors.Is(err, couponRepo.ErrUsageLimitReached) {
					uc.logger.Warn("CreateReservation: coupon %s exhausted during booking", coupon.Code)
					return coupons.ErrCouponUsageLimitReached
				}
				uc.logger.Error("CreateReservation: failed to increment coupon usage: %v", err)
				return fmt.Errorf("%w: failed to increment coupon usage: %v", ErrInternal, err)
			}
		}

		// 9.4. Создание или обновление клиента по телефону
		customer, err := uc.customerRepo.UpsertByPhone(txCtx, &domain.Customer{
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Email: req.CustomerEmail,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to upsert customer: %v", err)
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 9.5. Контрольная сверка лимита на клиента внутри транзакции
		if coupon != nil && coupon.PerCustomerLimit > 0 {
			count, err := uc.couponRepo.CountUsagesByCustomer(txCtx, coupon.ID, customer.ID)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to count coupon usages: %v", err)
				return fmt.Errorf("%w: failed to count coupon usages: %v", ErrInternal, err)
			}
			if count >= coupon.PerCustomerLimit {
				uc.logger.Warn("CreateReservation: coupon %s per-customer limit reached during booking", coupon.Code)
				return coupons.ErrCouponCustomerLimitReached
			}
		}

		// 9.6. Сборка визита со снимком данных услуг
		items := make([]domain.ReservationItem, 0, len(menus))
		for i, menu := range menus {
			items = append(items, domain.ReservationItem{
				MenuID:          menu.ID,
				MenuName:        menu.Name,
				Price:           menu.Price,
				DurationMinutes: menu.DurationMinutes,
				Category:        menu.Category,
				SortOrder:       i,
			})
		}

		reservation := &domain.Reservation{
			CustomerID:           customer.ID,
			StaffID:              assigned.ID,
			Date:                 req.Date,
			StartTime:            window.Start,
			EndTime:              window.End,
			TotalPrice:           subtotal - discount,
			TotalDurationMinutes: totalDuration,
			Status:               domain.StatusConfirmed,
			DiscountAmount:       discount,
			PaymentMethod:        req.PaymentMethod,
			PaymentReference:     req.PaymentReference,
			Note:                 req.Note,
			Items:                items,
		}
		if coupon != nil {
			reservation.CouponID = &coupon.ID
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrStaffTimeConflict) {
				uc.logger.Warn("CreateReservation: staff id=%d already booked at %s", assigned.ID, req.StartTime)
				return ErrStaffTimeConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 9.7. Фиксация применения купона к созданному визиту
		if coupon != nil {
			usage := &domain.CouponUsage{
				CouponID:      coupon.ID,
				CustomerID:    customer.ID,
				ReservationID: created.ID,
			}
			if err := uc.couponRepo.RecordUsage(txCtx, usage); err != nil {
				uc.logger.Error("CreateReservation: failed to record coupon usage: %v", err)
				return fmt.Errorf("%w: failed to record coupon usage: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 10. Сетка доступности даты изменилась
	if uc.cache != nil {
		uc.cache.InvalidateDate(ctx, dateStr)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, staff=%d, total=%d",
		result.ID, result.StaffID, result.TotalPrice)

	return uc.buildResponse(result, staffName, subtotal, req.CouponCode), nil
}

// getMenus загружает выбранные услуги и проверяет, что все активны
func (uc *UseCase) getMenus(ctx context.Context, menuIDs []int64) ([]*catalogClient.Menu, error) {
	menus, err := uc.catalogClient.GetMenus(ctx, menuIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMenuNotFound) {
			uc.logger.Warn("CreateReservation: some menus not found: %v", menuIDs)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateReservation: failed to get menus: %v", err)
		return nil, fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
	}

	for _, menu := range menus {
		if !menu.IsActive {
			uc.logger.Warn("CreateReservation: menu id=%d is inactive", menu.ID)
			return nil, ErrMenuNotFound
		}
	}

	return menus, nil
}

// resolveBusinessHours возвращает окно работы салона и самое позднее время
// начала визита на дату. Особый день с собственными часами заменяет недельные.
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

	if calendar.SpecialOpenDay != nil {
		if special := calendar.SpecialOpenDay.Hours(); special != nil {
			openWindow = special
			salonLast = nil
		}
	}

	if openWindow == nil {
		return nil, nil, nil
	}

	// Ограничения услуг сдвигают время последней записи раньше
	last := salonLast
	for _, menu := range menus {
		if menu.LastBookingTime == nil {
			continue
		}
		menuLast, err := types.NewTimeStringFromString(*menu.LastBookingTime)
		if err != nil {
			return nil, nil, err
		}
		if last == nil || menuLast.IsBefore(*last) {
			lastCopy := menuLast
			last = &lastCopy
		}
	}

	return openWindow, last, nil
}

// lookupCustomer ищет клиента по телефону до транзакции.
// Отсутствие клиента или флаг первого визита определяют применимость
// купонов с ограничением по типу клиента.
func (uc *UseCase) lookupCustomer(ctx context.Context, phone string) (*int64, bool, error) {
	customer, err := uc.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, true, nil
		}
		uc.logger.Error("CreateReservation: failed to get customer by phone: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}
	return &customer.ID, customer.IsFirstVisit, nil
}

// selectStaff выбирает мастера для визита по заблокированным визитам дня.
// Явно указанный мастер проверяется по квалификации, смене и пересечениям;
// при автоподборе берётся первый подходящий в порядке приоритета.
func (uc *UseCase) selectStaff(
	ctx context.Context,
	req *Request,
	window domain.TimeRange,
	byStaff map[int64][]*domain.Reservation,
) (*domain.Staff, error) {
	if req.StaffID != nil {
		member, err := uc.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateReservation: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateReservation: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !member.IsActive {
			uc.logger.Warn("CreateReservation: staff id=%d is inactive", *req.StaffID)
			return nil, ErrStaffNotFound
		}
		if !member.Capability.Covers(req.MenuIDs) {
			uc.logger.Warn("CreateReservation: staff id=%d not qualified for menus %v", *req.StaffID, req.MenuIDs)
			return nil, ErrStaffNotQualified
		}

		shift, err := uc.resolveShift(ctx, member.ID, req.Date)
		if err != nil {
			return nil, err
		}
		if shift == nil || !shift.Contains(window) {
			uc.logger.Warn("CreateReservation: staff id=%d not working during %s-%s", member.ID, window.Start, window.End)
			return nil, ErrStaffNotWorking
		}
		if hasConflict(window, byStaff[member.ID]) {
			uc.logger.Warn("CreateReservation: staff id=%d has a conflicting reservation", member.ID)
			return nil, ErrStaffTimeConflict
		}

		return member, nil
	}

	active, err := uc.staffRepo.GetActive(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get active staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get active staff: %v", ErrInternal, err)
	}

	qualified := make([]*domain.Staff, 0, len(active))
	staffIDs := make([]int64, 0, len(active))
	for _, member := range active {
		if member.Capability.Covers(req.MenuIDs) {
			qualified = append(qualified, member)
			staffIDs = append(staffIDs, member.ID)
		}
	}
	if len(qualified) == 0 {
		uc.logger.Warn("CreateReservation: no staff qualified for menus %v", req.MenuIDs)
		return nil, ErrNoStaffAvailable
	}

	schedules, err := uc.staffRepo.GetSchedulesForDate(ctx, staffIDs, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get staff schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff schedules: %v", ErrInternal, err)
	}

	// Мастера идут в порядке приоритета автоподбора, первый подходящий выигрывает
	for _, member := range qualified {
		shift := domain.ResolveShift(schedules[member.ID], req.Date)
		if shift == nil || !shift.Contains(window) {
			continue
		}
		if hasConflict(window, byStaff[member.ID]) {
			continue
		}
		return member, nil
	}

	uc.logger.Warn("CreateReservation: no staff available for %s-%s on %s",
		window.Start, window.End, req.Date.Format(domain.DateFormat))
	return nil, ErrNoStaffAvailable
}

// resolveShift загружает расписание одного мастера и возвращает его смену на дату
func (uc *UseCase) resolveShift(ctx context.Context, staffID int64, date time.Time) (*domain.TimeRange, error) {
	schedules, err := uc.staffRepo.GetSchedulesForDate(ctx, []int64{staffID}, date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get schedule for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
	}
	return domain.ResolveShift(schedules[staffID], date), nil
}

// buildResponse собирает ответ из созданного визита
func (uc *UseCase) buildResponse(r *domain.Reservation, staffName string, subtotal int64, couponCode *string) *Response {
	items := make([]ResponseItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ResponseItem{
			MenuID:          item.MenuID,
			MenuName:        item.MenuName,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
			Category:        item.Category,
		})
	}

	return &Response{
		ID:                   r.ID,
		CustomerID:           r.CustomerID,
		StaffID:              r.StaffID,
		StaffName:            staffName,
		Date:                 r.Date,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Subtotal:             subtotal,
		DiscountAmount:       r.DiscountAmount,
		TotalPrice:           r.TotalPrice,
		TotalDurationMinutes: r.TotalDurationMinutes,
		Status:               string(r.Status),
		CouponCode:           couponCode,
		Items:                items,
		CreatedAt:            r.CreatedAt,
	}
}

// hasConflict возвращает true, если интервал пересекается хотя бы с одним
// занимающим время визитом мастера
func hasConflict(window domain.TimeRange, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if !r.CountsForConflict() {
			continue
		}
		if window.Overlaps(r.Window()) {
			return true
		}
	}
	return false
}
