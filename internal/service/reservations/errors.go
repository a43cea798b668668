package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда визит не найден
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidTransition возвращается при недопустимом переходе статусов
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRestoreConflict возвращается, когда восстановление визита
	// пересекается с другим подтверждённым визитом мастера
	ErrRestoreConflict = errors.New("restore conflicts with another reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
