package delete_holiday

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hikari-salon/reservation-service/internal/api/handlers"
	"github.com/hikari-salon/reservation-service/internal/service/schedule"
)

const (
	msgInvalidHolidayID = "некорректный ID праздника"
	msgNotFound         = "праздник не найден"
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

// Handle DELETE /api/v1/admin/holidays/{holidayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holidayID, err := strconv.ParseInt(vars["holidayId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), holidayID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrHolidayNotFound):
			h.logger.Warn("DELETE /admin/holidays/{id} - Holiday not found: holiday_id=%d", holidayID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/holidays/{id} - Failed to delete holiday: holiday_id=%d, error=%v",
				holidayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/holidays/{id} - Holiday deleted successfully: holiday_id=%d", holidayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
