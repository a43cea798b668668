package create_holiday

import (
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// CreateHolidayRequest HTTP request model.
// Без времён салон закрыт весь день, иначе блокируется только интервал.
type CreateHolidayRequest struct {
	Date      string  `json:"date"` // "2026-01-01"
	Name      string  `json:"name"`
	StartTime *string `json:"startTime,omitempty"` // "12:00"
	EndTime   *string `json:"endTime,omitempty"`   // "15:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateHolidayRequest) ToServiceRequest() (*models.CreateHolidayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &models.CreateHolidayRequest{
		Date: date,
		Name: r.Name,
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
