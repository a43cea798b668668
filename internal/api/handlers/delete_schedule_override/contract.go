package delete_schedule_override

import (
	"context"
	"time"
)

type ScheduleService interface {
	DeleteOverride(ctx context.Context, staffID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
