package create_holiday

import (
	"context"

	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
