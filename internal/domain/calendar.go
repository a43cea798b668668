package domain

import (
	"time"

	"github.com/hikari-salon/reservation-service/pkg/types"
)

// Holiday праздник или техническое закрытие салона.
// Если StartTime и EndTime не заданы, салон закрыт весь день,
// иначе блокируется только указанный интервал.
type Holiday struct {
	ID        int64
	Date      time.Time
	Name      string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsFullDay возвращает true, если закрытие действует весь день
func (h *Holiday) IsFullDay() bool {
	return h.StartTime.IsZero() && h.EndTime.IsZero()
}

// Block возвращает блокируемый интервал.
// Для закрытия на весь день это [00:00, 23:59).
func (h *Holiday) Block() TimeRange {
	if h.IsFullDay() {
		return TimeRange{Start: "00:00", End: "23:59"}
	}
	return TimeRange{Start: h.StartTime, End: h.EndTime}
}

// SpecialOpenDay разовое открытие в день, который по недельному графику
// был бы выходным. Опционально задаёт собственные часы работы.
type SpecialOpenDay struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Hours возвращает часы работы особого дня, если они заданы
func (s *SpecialOpenDay) Hours() *TimeRange {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return nil
	}
	return &TimeRange{Start: s.StartTime, End: s.EndTime}
}

// DayCalendar календарные исключения одной даты
type DayCalendar struct {
	Holidays       []Holiday
	SpecialOpenDay *SpecialOpenDay
}

// IsClosedDate возвращает true, если дата закрыта по недельному графику
// и не открыта особым днём. Особый день отменяет закрытие по дню недели.
func (c DayCalendar) IsClosedDate(date time.Time, closedWeekdays []time.Weekday) bool {
	if c.SpecialOpenDay != nil {
		return false
	}
	weekday := date.Weekday()
	for _, wd := range closedWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// HolidayBlocks возвращает блокирующие интервалы даты.
// Праздничные блоки действуют независимо от статуса дня недели.
func (c DayCalendar) HolidayBlocks() []TimeRange {
	blocks := make([]TimeRange, 0, len(c.Holidays))
	for i := range c.Holidays {
		blocks = append(blocks, c.Holidays[i].Block())
	}
	return blocks
}

// BlocksWindow возвращает true, если интервал пересекает хотя бы один
// праздничный блок
func (c DayCalendar) BlocksWindow(window TimeRange) bool {
	for _, block := range c.HolidayBlocks() {
		if block.Overlaps(window) {
			return true
		}
	}
	return false
}
