package create_reservation

import "errors"

var (
	// ErrMenuNotFound возвращается, когда услуга не найдена или неактивна
	ErrMenuNotFound = errors.New("create_reservation: menu not found")

	// ErrStaffNotFound возвращается, когда указанный мастер не найден или неактивен
	ErrStaffNotFound = errors.New("create_reservation: staff not found")

	// ErrStaffNotQualified возвращается, когда мастер не выполняет выбранные услуги
	ErrStaffNotQualified = errors.New("create_reservation: staff is not qualified for selected menus")

	// ErrStaffNotWorking возвращается, когда визит не помещается в смену мастера
	ErrStaffNotWorking = errors.New("create_reservation: staff is not working at this time")

	// ErrStaffTimeConflict возвращается, когда время мастера уже занято
	ErrStaffTimeConflict = errors.New("create_reservation: staff is already booked at this time")

	// ErrNoStaffAvailable возвращается, когда ни один мастер не может принять визит
	ErrNoStaffAvailable = errors.New("create_reservation: no staff available for this slot")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_reservation: salon is closed on this date")

	// ErrHolidayBlock возвращается, когда визит пересекает праздничный блок
	ErrHolidayBlock = errors.New("create_reservation: time is blocked by a holiday")

	// ErrOutsideBusinessHours возвращается, когда визит не помещается в часы работы
	ErrOutsideBusinessHours = errors.New("create_reservation: time is outside business hours")

	// ErrPastLastBooking возвращается, когда визит начинается позже времени последней записи
	ErrPastLastBooking = errors.New("create_reservation: time is past the last booking cutoff")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToBook возвращается при нарушении минимального уведомления
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
