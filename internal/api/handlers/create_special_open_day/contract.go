package create_special_open_day

import (
	"context"

	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateSpecialOpenDay(ctx context.Context, req *models.CreateSpecialOpenDayRequest) (*models.SpecialOpenDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
