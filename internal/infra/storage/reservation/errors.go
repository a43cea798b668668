package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда визит не найден
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrStaffTimeConflict возвращается, когда интервал визита пересекается с
	// другим подтверждённым визитом того же мастера (exclusion constraint)
	ErrStaffTimeConflict = errors.New("reservation.repository: staff time conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
