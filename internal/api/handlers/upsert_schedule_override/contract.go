package upsert_schedule_override

import (
	"context"

	"github.com/hikari-salon/reservation-service/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
