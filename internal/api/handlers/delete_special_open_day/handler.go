package delete_special_open_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hikari-salon/reservation-service/internal/api/handlers"
	"github.com/hikari-salon/reservation-service/internal/service/schedule"
)

const (
	msgInvalidDayID = "некорректный ID особого дня"
	msgNotFound     = "особый день открытия не найден"
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

// Handle DELETE /api/v1/admin/special-open-days/{dayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dayID, err := strconv.ParseInt(vars["dayId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/special-open-days/{id} - Invalid day ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	if err := h.service.DeleteSpecialOpenDay(r.Context(), dayID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSpecialOpenDayNotFound):
			h.logger.Warn("DELETE /admin/special-open-days/{id} - Special open day not found: day_id=%d", dayID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/special-open-days/{id} - Failed to delete special open day: day_id=%d, error=%v",
				dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/special-open-days/{id} - Special open day deleted successfully: day_id=%d", dayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
