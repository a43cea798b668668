package domain

import (
	"time"

	"github.com/hikari-salon/reservation-service/pkg/types"
)

// ReservationStatus статус визита
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// allowedTransitions допустимые переходы статусов.
// CANCELLED и NO_SHOW можно вернуть в CONFIRMED (отмена ошибочного действия
// администратора), COMPLETED — терминальный статус.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCancelled: {StatusConfirmed},
	StatusNoShow:    {StatusConfirmed},
	StatusCompleted: {},
}

// CanTransition возвращает true, если переход from → to разрешён
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseReservationStatus валидирует строковый статус
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// Reservation визит клиента салона
type Reservation struct {
	ID                   int64
	CustomerID           int64
	StaffID              int64
	Date                 time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	TotalPrice           int64
	TotalDurationMinutes int
	Status               ReservationStatus

	CouponID       *int64
	DiscountAmount int64

	PaymentMethod    string
	PaymentReference *string
	Note             *string

	Items []ReservationItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsForConflict возвращает true, если бронирование занимает время мастера.
// В расчёте пересечений участвуют только подтверждённые визиты.
func (r *Reservation) CountsForConflict() bool {
	return r.Status == StatusConfirmed
}

// Window возвращает занимаемый интервал [StartTime, EndTime)
func (r *Reservation) Window() TimeRange {
	return TimeRange{Start: r.StartTime, End: r.EndTime}
}

// ReservationItem позиция визита: снимок данных меню на момент бронирования.
// Последующие правки каталога на сохранённые визиты не влияют.
type ReservationItem struct {
	ID              int64
	ReservationID   int64
	MenuID          int64
	MenuName        string
	Price           int64
	DurationMinutes int
	Category        string
	SortOrder       int
}

// ReservationsFilter фильтр для выборки визитов администратором
type ReservationsFilter struct {
	Date            *time.Time
	StaffID         *int64
	Status          *ReservationStatus
	IncludeInactive bool // включать ли отменённые и no-show визиты
}
