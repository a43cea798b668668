package catalogservice

// Menu модель услуги из каталога
type Menu struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           int64   `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category"`
	LastBookingTime *string `json:"lastBookingTime,omitempty"` // "HH:MM", последнее допустимое время начала
	IsActive        bool    `json:"isActive"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
