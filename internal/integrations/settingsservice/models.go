package settingsservice

import (
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// DayHours часы работы салона для одного дня недели
type DayHours struct {
	IsOpen      bool    `json:"isOpen"`
	Open        *string `json:"open,omitempty"`        // "HH:MM"
	Close       *string `json:"close,omitempty"`       // "HH:MM"
	LastBooking *string `json:"lastBooking,omitempty"` // "HH:MM", последнее допустимое время начала визита
}

// WeeklyHours часы работы по дням недели
type WeeklyHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Settings снимок настроек салона.
// Загружается один раз в начале обработки запроса и передаётся в компоненты
// как неизменяемое значение: расчёты доступности детерминированы
// относительно одного снимка.
type Settings struct {
	ClosedDays         []int       `json:"closedDays"` // дни недели, 0 = воскресенье
	BusinessHours      WeeklyHours `json:"businessHours"`
	SlotStepMinutes    int         `json:"slotStepMinutes"`
	AdvanceBookingDays int         `json:"advanceBookingDays"` // 0 = без ограничения
	MinNoticeMinutes   int         `json:"minNoticeMinutes"`
}

// HoursFor возвращает часы работы на день недели указанной даты
func (s *Settings) HoursFor(date time.Time) DayHours {
	switch date.Weekday() {
	case time.Monday:
		return s.BusinessHours.Monday
	case time.Tuesday:
		return s.BusinessHours.Tuesday
	case time.Wednesday:
		return s.BusinessHours.Wednesday
	case time.Thursday:
		return s.BusinessHours.Thursday
	case time.Friday:
		return s.BusinessHours.Friday
	case time.Saturday:
		return s.BusinessHours.Saturday
	case time.Sunday:
		return s.BusinessHours.Sunday
	default:
		return DayHours{IsOpen: false}
	}
}

// ClosedWeekdays возвращает закрытые дни недели как time.Weekday
func (s *Settings) ClosedWeekdays() []time.Weekday {
	weekdays := make([]time.Weekday, 0, len(s.ClosedDays))
	for _, d := range s.ClosedDays {
		weekdays = append(weekdays, time.Weekday(d))
	}
	return weekdays
}

// SlotStep возвращает шаг сетки слотов с подстановкой значения по умолчанию
func (s *Settings) SlotStep() int {
	if s.SlotStepMinutes <= 0 {
		return domain.DefaultSlotStepMinutes
	}
	return s.SlotStepMinutes
}

// OpenWindow возвращает интервал работы салона на дату.
// Для дня, открытого особым днём с собственными часами, вызывающая сторона
// подменяет интервал часами особого дня.
func (d DayHours) OpenWindow() (*domain.TimeRange, error) {
	if !d.IsOpen || d.Open == nil || d.Close == nil {
		return nil, nil
	}

	open, err := types.NewTimeStringFromString(*d.Open)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(*d.Close)
	if err != nil {
		return nil, err
	}

	return &domain.TimeRange{Start: open, End: closeTime}, nil
}

// LastBookingTime возвращает последнее допустимое время начала визита,
// если оно задано
func (d DayHours) LastBookingTime() (*types.TimeString, error) {
	if d.LastBooking == nil {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*d.LastBooking)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
