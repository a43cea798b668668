package delete_schedule_override

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hikari-salon/reservation-service/internal/api/handlers"
	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/service/schedule"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound       = "изменение графика не найдено"
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

// Handle DELETE /api/v1/admin/staff/{staffId}/schedule-override/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/staff/{id}/schedule-override/{date} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /admin/staff/{id}/schedule-override/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), staffID, date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrOverrideNotFound):
			h.logger.Warn("DELETE /admin/staff/{id}/schedule-override/{date} - Override not found: staff_id=%d, date=%s",
				staffID, vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/staff/{id}/schedule-override/{date} - Failed to delete override: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/staff/{id}/schedule-override/{date} - Override deleted successfully: staff_id=%d, date=%s",
		staffID, vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
