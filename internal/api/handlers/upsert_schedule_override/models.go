package upsert_schedule_override

import (
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// UpsertOverrideRequest HTTP request model
type UpsertOverrideRequest struct {
	Date      string  `json:"date"` // "2026-09-15"
	IsWorking bool    `json:"isWorking"`
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	EndTime   *string `json:"endTime,omitempty"`   // "18:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertOverrideRequest) ToServiceRequest(staffID int64) (*models.UpsertOverrideRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &models.UpsertOverrideRequest{
		StaffID:   staffID,
		Date:      date,
		IsWorking: r.IsWorking,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = endTime
	}

	return req, nil
}
