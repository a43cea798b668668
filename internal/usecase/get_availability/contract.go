package get_availability

import (
	"context"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	"github.com/hikari-salon/reservation-service/internal/integrations/settingsservice"
)

// ReservationRepository интерфейс репозитория визитов
type ReservationRepository interface {
	GetByFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetActive(ctx context.Context) ([]*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetSchedulesForDate(ctx context.Context, staffIDs []int64, date time.Time) (map[int64]domain.StaffSchedule, error)
}

// CalendarRepository интерфейс репозитория календарных исключений
type CalendarRepository interface {
	GetDayCalendar(ctx context.Context, date time.Time) (domain.DayCalendar, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetMenus(ctx context.Context, menuIDs []int64) ([]*catalogservice.Menu, error)
}

// SettingsServiceClient интерфейс клиента настроек салона
type SettingsServiceClient interface {
	GetSettings(ctx context.Context) (*settingsservice.Settings, error)
}

// AvailabilityCache интерфейс кэша рассчитанной доступности.
// Реализация может отсутствовать (nil) — кэш опционален.
type AvailabilityCache interface {
	Get(ctx context.Context, date string, menuIDs []int64, staffID *int64, dest interface{}) bool
	Set(ctx context.Context, date string, menuIDs []int64, staffID *int64, value interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
