package get_availability

import (
	"errors"
	"net/http"

	"github.com/hikari-salon/reservation-service/internal/api/handlers"
	getAvailability "github.com/hikari-salon/reservation-service/internal/usecase/get_availability"
)

const (
	msgInvalidParams  = "некорректные параметры запроса"
	msgMenuNotFound   = "услуга не найдена"
	msgStaffNotFound  = "мастер не найден"
	msgInvalidDate    = "некорректная дата визита"
	msgDateTooFar     = "дата визита слишком далеко в будущем"
	msgMissingMenuIDs = "необходимо выбрать хотя бы одну услугу"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (обязательный), menuIds (обязательный, "1,2"), staffId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateStr := query.Get("date")
	menuIDsStr := query.Get("menuIds")
	staffIDStr := query.Get("staffId")

	if menuIDsStr == "" {
		h.logger.Warn("GET /availability - Missing menuIds")
		handlers.RespondBadRequest(w, msgMissingMenuIDs)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, menuIDsStr, staffIDStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrMenuNotFound):
			h.logger.Warn("GET /availability - Menu not found: menus=%v", useCaseReq.MenuIDs)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, getAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /availability - Staff not found: staff=%v", useCaseReq.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far in future: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Computed %d slots: date=%s", len(result.Slots), result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
