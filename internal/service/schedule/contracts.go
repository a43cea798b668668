package schedule

import (
	"context"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	UpsertOverride(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
	DeleteOverride(ctx context.Context, staffID int64, date time.Time) error
}

// CalendarRepository интерфейс репозитория календарных исключений
type CalendarRepository interface {
	CreateHoliday(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) (time.Time, error)
	CreateSpecialOpenDay(ctx context.Context, day *domain.SpecialOpenDay) (*domain.SpecialOpenDay, error)
	DeleteSpecialOpenDay(ctx context.Context, id int64) (time.Time, error)
}

// CacheInvalidator интерфейс инвалидации кэша доступности
type CacheInvalidator interface {
	InvalidateDate(ctx context.Context, date string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
