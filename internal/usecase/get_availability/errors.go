package get_availability

import "errors"

var (
	// ErrMenuNotFound возвращается, когда услуга не найдена или неактивна
	ErrMenuNotFound = errors.New("menu not found")

	// ErrStaffNotFound возвращается, когда указанный мастер не найден или неактивен
	ErrStaffNotFound = errors.New("staff not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
