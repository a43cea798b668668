package schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrOverrideNotFound возвращается, когда разовое изменение графика не найдено
	ErrOverrideNotFound = errors.New("schedule override not found")

	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrSpecialOpenDayNotFound возвращается, когда особый день не найден
	ErrSpecialOpenDayNotFound = errors.New("special open day not found")

	// ErrDuplicateSpecialOpenDay возвращается при повторном особом дне на дату
	ErrDuplicateSpecialOpenDay = errors.New("special open day already exists for date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
