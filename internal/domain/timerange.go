package domain

import "github.com/hikari-salon/reservation-service/pkg/types"

// TimeRange полуоткрытый временной интервал [Start, End) в пределах одного дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange создает интервал от start длительностью durationMinutes
func NewTimeRange(start types.TimeString, durationMinutes int) (TimeRange, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps возвращает true, если интервалы действительно пересекаются.
// Интервалы полуоткрытые, поэтому бронирования "встык" (End == other.Start)
// пересечением не считаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && r.End.IsAfter(other.Start)
}

// Contains возвращает true, если other целиком лежит внутри r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.IsBefore(r.Start) && !other.End.IsAfter(r.End)
}

// IsValid возвращает true, если начало строго раньше конца
func (r TimeRange) IsValid() bool {
	return r.Start.IsBefore(r.End)
}
