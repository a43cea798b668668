package domain

// DateFormat формат дат во внешних контрактах (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// DefaultSlotStepMinutes шаг сетки слотов, когда настройки салона его не задают
const DefaultSlotStepMinutes = 30

// Ограничения входных данных
const (
	MaxNoteLength         = 500
	MaxCustomerNameLength = 100
	MaxMenusPerBooking    = 10
)
