package get_availability

import (
	"time"

	"github.com/hikari-salon/reservation-service/pkg/types"
)

// Request модель запроса на расчёт доступности
type Request struct {
	Date    time.Time // Дата визита (без времени)
	MenuIDs []int64   // Выбранные услуги, не может быть пустым
	StaffID *int64    // Конкретный мастер (опционально)
}

// Response модель ответа с сеткой доступности.
// Сериализуется в JSON как есть — этой же формой ответ лежит в кэше.
type Response struct {
	Date                 string `json:"date"`      // "2026-09-15"
	DayOfWeek            string `json:"dayOfWeek"` // "Tuesday"
	IsClosed             bool   `json:"isClosed"`
	TotalDurationMinutes int    `json:"totalDurationMinutes"`
	TotalPrice           int64  `json:"totalPrice"` // Сумма до скидок, в йенах
	Slots                []Slot `json:"slots"`
}

// Slot один слот сетки доступности
type Slot struct {
	Time      types.TimeString `json:"time"`
	Available bool             `json:"available"`
	StaffID   *int64           `json:"staffId,omitempty"` // Мастер, способный принять визит в это время
}
