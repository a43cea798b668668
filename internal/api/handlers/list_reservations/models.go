package list_reservations

import (
	"strconv"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(dateStr, staffIDStr, statusStr, includeInactiveStr string) (*models.GetReservationsRequest, error) {
	req := &models.GetReservationsRequest{}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
