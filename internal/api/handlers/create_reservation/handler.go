package create_reservation

import (
	"errors"
	"net/http"

	"github.com/hikari-salon/reservation-service/internal/api/handlers"
	"github.com/hikari-salon/reservation-service/internal/service/coupons"
	createReservation "github.com/hikari-salon/reservation-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMenuNotFound         = "услуга не найдена"
	msgStaffNotFound        = "мастер не найден"
	msgStaffNotQualified    = "мастер не выполняет выбранные услуги"
	msgStaffNotWorking      = "мастер не работает в выбранное время"
	msgStaffConflict        = "мастер уже занят в выбранное время"
	msgNoStaffAvailable     = "нет свободных мастеров на выбранное время"
	msgInvalidReservDate    = "некорректная дата визита"
	msgDateTooFar           = "дата визита слишком далеко в будущем"
	msgSalonClosed          = "салон закрыт в выбранную дату"
	msgHolidayBlock         = "выбранное время недоступно из-за праздника"
	msgOutsideBusinessHours = "визит не помещается в часы работы салона"
	msgPastLastBooking      = "выбранное время позже времени последней записи"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgTooLateToBook        = "слишком поздно для записи на это время"
)

// couponMessages сообщения для причин отказа валидатора купонов
var couponMessages = map[error]string{
	coupons.ErrCouponNotFound:              "купон не найден",
	coupons.ErrCouponInactive:              "купон отключён",
	coupons.ErrCouponNotStarted:            "срок действия купона ещё не начался",
	coupons.ErrCouponExpired:               "срок действия купона истёк",
	coupons.ErrCouponWeekdayNotAllowed:     "купон не действует в этот день недели",
	coupons.ErrCouponTimeNotAllowed:        "купон не действует в это время",
	coupons.ErrCouponMenuNotAllowed:        "купон не применим к выбранным услугам",
	coupons.ErrCouponMinSubtotal:           "сумма визита меньше минимальной для купона",
	coupons.ErrCouponUsageLimitReached:     "лимит использования купона исчерпан",
	coupons.ErrCouponCustomerLimitReached:  "вы уже использовали этот купон максимальное число раз",
	coupons.ErrCouponFirstTimeOnly:         "купон только для новых клиентов",
	coupons.ErrCouponReturningOnly:         "купон только для постоянных клиентов",
}

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, req, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, staff_id=%d",
		result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondError транслирует ошибки use case в HTTP статусы:
// нарушения бизнес-правил и отказы купона в 400, конфликты расписания в 409
func (h *Handler) respondError(w http.ResponseWriter, req CreateReservationRequest, err error) {
	for couponErr, msg := range couponMessages {
		if errors.Is(err, couponErr) {
			h.logger.Warn("POST /reservations - Coupon rejected: code=%v, reason=%v", req.CouponCode, err)
			handlers.RespondBadRequest(w, msg)
			return
		}
	}

	switch {
	case errors.Is(err, createReservation.ErrMenuNotFound):
		h.logger.Warn("POST /reservations - Menu not found: menus=%v", req.MenuIDs)
		handlers.RespondNotFound(w, msgMenuNotFound)

	case errors.Is(err, createReservation.ErrStaffNotFound):
		h.logger.Warn("POST /reservations - Staff not found: staff=%v", req.StaffID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, createReservation.ErrStaffNotQualified):
		h.logger.Warn("POST /reservations - Staff not qualified: staff=%v, menus=%v", req.StaffID, req.MenuIDs)
		handlers.RespondBadRequest(w, msgStaffNotQualified)

	case errors.Is(err, createReservation.ErrStaffNotWorking):
		h.logger.Warn("POST /reservations - Staff not working: staff=%v, date=%s, time=%s",
			req.StaffID, req.Date, req.StartTime)
		handlers.RespondError(w, http.StatusConflict, msgStaffNotWorking)

	case errors.Is(err, createReservation.ErrStaffTimeConflict):
		h.logger.Warn("POST /reservations - Staff time conflict: staff=%v, date=%s, time=%s",
			req.StaffID, req.Date, req.StartTime)
		handlers.RespondError(w, http.StatusConflict, msgStaffConflict)

	case errors.Is(err, createReservation.ErrNoStaffAvailable):
		h.logger.Warn("POST /reservations - No staff available: date=%s, time=%s", req.Date, req.StartTime)
		handlers.RespondError(w, http.StatusConflict, msgNoStaffAvailable)

	case errors.Is(err, createReservation.ErrInvalidDate):
		h.logger.Warn("POST /reservations - Invalid date: %s", req.Date)
		handlers.RespondBadRequest(w, msgInvalidReservDate)

	case errors.Is(err, createReservation.ErrDateTooFarInFuture):
		h.logger.Warn("POST /reservations - Date too far in future: %s", req.Date)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, createReservation.ErrSalonClosed):
		h.logger.Warn("POST /reservations - Salon closed: date=%s", req.Date)
		handlers.RespondBadRequest(w, msgSalonClosed)

	case errors.Is(err, createReservation.ErrHolidayBlock):
		h.logger.Warn("POST /reservations - Holiday block: date=%s, time=%s", req.Date, req.StartTime)
		handlers.RespondBadRequest(w, msgHolidayBlock)

	case errors.Is(err, createReservation.ErrOutsideBusinessHours):
		h.logger.Warn("POST /reservations - Outside business hours: date=%s, time=%s", req.Date, req.StartTime)
		handlers.RespondBadRequest(w, msgOutsideBusinessHours)

	case errors.Is(err, createReservation.ErrPastLastBooking):
		h.logger.Warn("POST /reservations - Past last booking cutoff: date=%s, time=%s", req.Date, req.StartTime)
		handlers.RespondBadRequest(w, msgPastLastBooking)

	case errors.Is(err, createReservation.ErrInvalidTimeSlot):
		h.logger.Warn("POST /reservations - Invalid time slot: time=%s", req.StartTime)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createReservation.ErrTooLateToBook):
		h.logger.Warn("POST /reservations - Too late to book: date=%s, time=%s", req.Date, req.StartTime)
		handlers.RespondBadRequest(w, msgTooLateToBook)

	case errors.Is(err, createReservation.ErrInvalidInput):
		h.logger.Warn("POST /reservations - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("POST /reservations - Failed to create reservation: date=%s, error=%v", req.Date, err)
		handlers.RespondInternalError(w)
	}
}
