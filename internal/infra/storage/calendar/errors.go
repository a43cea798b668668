package calendar

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("calendar.repository: holiday not found")

	// ErrSpecialOpenDayNotFound возвращается, когда особый день не найден
	ErrSpecialOpenDayNotFound = errors.New("calendar.repository: special open day not found")

	// ErrDuplicateSpecialOpenDay возвращается при попытке создать второй
	// особый день на ту же дату
	ErrDuplicateSpecialOpenDay = errors.New("calendar.repository: special open day already exists for date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
