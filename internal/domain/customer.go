package domain

import "time"

// Customer клиент салона.
// Бронирование гостевое, без аутентификации: идентичность определяется
// номером телефона, повторное бронирование обновляет имя и email.
type Customer struct {
	ID           int64
	Name         string
	Phone        string
	Email        *string
	IsFirstVisit bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
