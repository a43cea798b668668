package get_availability

import (
	"fmt"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.MenuIDs) == 0 {
		return fmt.Errorf("%w: at least one menu is required", ErrInvalidInput)
	}

	if len(req.MenuIDs) > domain.MaxMenusPerBooking {
		return fmt.Errorf("%w: at most %d menus per reservation", ErrInvalidInput, domain.MaxMenusPerBooking)
	}

	seen := make(map[int64]struct{}, len(req.MenuIDs))
	for _, id := range req.MenuIDs {
		if id <= 0 {
			return fmt.Errorf("%w: menu id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate menu id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет окно бронирования: не в прошлом и не дальше
// advanceBookingDays от сегодняшнего дня
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
