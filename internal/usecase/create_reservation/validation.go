package create_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
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

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if err := validatePhone(req.CustomerPhone); err != nil {
		return err
	}

	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}

	if req.CouponCode != nil && strings.TrimSpace(*req.CouponCode) == "" {
		return fmt.Errorf("%w: coupon code cannot be empty", ErrInvalidInput)
	}

	if req.Note != nil && len([]rune(*req.Note)) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	return nil
}

// validatePhone проверяет формат телефона: цифры с необязательными
// разделителями и ведущим плюсом, от 10 до 15 цифр
func validatePhone(phone string) error {
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == '-' || r == ' ':
		default:
			return fmt.Errorf("%w: invalid phone format", ErrInvalidInput)
		}
	}
	if digits < 10 || digits > 15 {
		return fmt.Errorf("%w: phone must contain 10-15 digits", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет окно бронирования: не в прошлом и не дальше
// advanceBookingDays от сегодняшнего дня
func validateDate(reservationDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	dateOnly := time.Date(reservationDate.Year(), reservationDate.Month(), reservationDate.Day(), 0, 0, 0, 0, reservationDate.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что бронирование не нарушает минимальное
// уведомление minNoticeMinutes. Действует только для сегодняшней даты.
func validateNotice(
	reservationDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	if !isSameDay(reservationDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Окно уведомления выходит за полночь — сегодня уже ничего не забронировать
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateGridAlignment проверяет, что время начала лежит на сетке слотов
// относительно открытия салона
func validateGridAlignment(start, open types.TimeString, stepMinutes int) error {
	startMinutes, err := start.Minutes()
	if err != nil {
		return ErrInvalidTimeSlot
	}
	openMinutes, err := open.Minutes()
	if err != nil {
		return ErrInvalidTimeSlot
	}

	diff := startMinutes - openMinutes
	if diff < 0 || diff%stepMinutes != 0 {
		return ErrInvalidTimeSlot
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
