package create_reservation

import (
	"context"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	"github.com/hikari-salon/reservation-service/internal/integrations/settingsservice"
	"github.com/hikari-salon/reservation-service/internal/service/coupons"
)

// ReservationRepository интерфейс репозитория визитов
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
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

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	UpsertByPhone(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// CouponRepository интерфейс репозитория купонов.
// IncrementUsage атомарно занимает место в общем лимите купона,
// RecordUsage фиксирует факт применения к визиту.
type CouponRepository interface {
	IncrementUsage(ctx context.Context, couponID int64) error
	CountUsagesByCustomer(ctx context.Context, couponID, customerID int64) (int, error)
	RecordUsage(ctx context.Context, usage *domain.CouponUsage) error
}

// CouponValidator интерфейс валидатора купонов
type CouponValidator interface {
	Validate(ctx context.Context, input coupons.ValidateInput) (*coupons.ValidateResult, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetMenus(ctx context.Context, menuIDs []int64) ([]*catalogservice.Menu, error)
}

// SettingsServiceClient интерфейс клиента настроек салона
type SettingsServiceClient interface {
	GetSettings(ctx context.Context) (*settingsservice.Settings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator интерфейс инвалидации кэша доступности
type CacheInvalidator interface {
	InvalidateDate(ctx context.Context, date string)
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
