package create_special_open_day

import (
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// CreateSpecialOpenDayRequest HTTP request model.
// Без времён салон работает по обычным часам этого дня недели.
type CreateSpecialOpenDayRequest struct {
	Date      string  `json:"date"` // "2026-01-02"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSpecialOpenDayRequest) ToServiceRequest() (*models.CreateSpecialOpenDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &models.CreateSpecialOpenDayRequest{
		Date: date,
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
