package create_special_open_day

import (
	"errors"
	"net/http"

	"github.com/hikari-salon/reservation-service/internal/api/handlers"
	"github.com/hikari-salon/reservation-service/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDuplicate          = "особый день открытия на эту дату уже существует"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/special-open-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSpecialOpenDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/special-open-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/special-open-days - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateSpecialOpenDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrDuplicateSpecialOpenDay):
			h.logger.Warn("POST /admin/special-open-days - Duplicate date: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicate)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/special-open-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/special-open-days - Failed to create special open day: date=%s, error=%v",
				req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/special-open-days - Special open day created successfully: day_id=%d, date=%s",
		result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
