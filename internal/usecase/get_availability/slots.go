package get_availability

import (
	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// staffCandidate мастер-кандидат с уже разрешённой сменой и визитами на дату
type staffCandidate struct {
	staff        *domain.Staff
	shift        *domain.TimeRange
	reservations []*domain.Reservation
}

// generateGrid генерирует сетку времён начала от открытия до закрытия
// с фиксированным шагом. Вместимость каждого слота проверяется отдельно.
func generateGrid(open, close types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	grid := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		grid = append(grid, current)

		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return grid, nil
}

// effectiveLastStart возвращает самое позднее допустимое время начала визита:
// минимум из времени последней записи салона и ограничений выбранных услуг.
// nil означает отсутствие ограничения — действует только время закрытия.
func effectiveLastStart(salonLast *types.TimeString, menus []*catalogservice.Menu) (*types.TimeString, error) {
	last := salonLast

	for _, menu := range menus {
		if menu.LastBookingTime == nil {
			continue
		}
		menuLast, err := types.NewTimeStringFromString(*menu.LastBookingTime)
		if err != nil {
			return nil, err
		}
		if last == nil || menuLast.IsBefore(*last) {
			lastCopy := menuLast
			last = &lastCopy
		}
	}

	return last, nil
}

// buildSlots вычисляет доступность каждого слота сетки.
// Слот доступен, если визит целиком помещается до закрытия, не пересекает
// праздничные блоки и хотя бы один кандидат работает всё это время
// без пересечения с подтверждёнными визитами. Кандидаты перебираются
// в порядке приоритета, первый подходящий попадает в слот.
func buildSlots(
	grid []types.TimeString,
	totalDurationMinutes int,
	close types.TimeString,
	lastStart *types.TimeString,
	minStart *types.TimeString,
	calendar domain.DayCalendar,
	candidates []staffCandidate,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(grid))

	for _, start := range grid {
		// Время последней записи ограничивает начало визита
		if lastStart != nil && start.IsAfter(*lastStart) {
			continue
		}
		// Для сегодняшней даты отбрасываем слоты раньше минимального уведомления
		if minStart != nil && start.IsBefore(*minStart) {
			continue
		}

		window, err := domain.NewTimeRange(start, totalDurationMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, evaluateSlot(start, window, close, calendar, candidates))
	}

	return slots, nil
}

// evaluateSlot проверяет один слот по всем правилам доступности
func evaluateSlot(
	start types.TimeString,
	window domain.TimeRange,
	close types.TimeString,
	calendar domain.DayCalendar,
	candidates []staffCandidate,
) Slot {
	slot := Slot{Time: start}

	if window.End.IsAfter(close) {
		return slot
	}
	if calendar.BlocksWindow(window) {
		return slot
	}

	for _, candidate := range candidates {
		if candidate.shift == nil || !candidate.shift.Contains(window) {
			continue
		}
		if hasConflict(window, candidate.reservations) {
			continue
		}

		staffID := candidate.staff.ID
		slot.Available = true
		slot.StaffID = &staffID
		break
	}

	return slot
}

// hasConflict возвращает true, если интервал пересекается хотя бы с одним
// занимающим время визитом мастера
func hasConflict(window domain.TimeRange, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if !r.CountsForConflict() {
			continue
		}
		if window.Overlaps(r.Window()) {
			return true
		}
	}
	return false
}
