package domain

import (
	"time"

	"github.com/hikari-salon/reservation-service/pkg/types"
)

// Capability набор услуг, которые мастер умеет выполнять.
// Явный тегированный вариант: либо все меню, либо конкретный набор.
// В хранилище "все меню" кодируется отсутствием строк capabilities,
// наружу это соглашение не протекает.
type Capability struct {
	AllMenus bool
	MenuIDs  []int64
}

// CapabilityAll возвращает способность "все меню"
func CapabilityAll() Capability {
	return Capability{AllMenus: true}
}

// CapabilityOf возвращает способность для конкретного набора меню
func CapabilityOf(menuIDs []int64) Capability {
	if len(menuIDs) == 0 {
		return CapabilityAll()
	}
	return Capability{MenuIDs: menuIDs}
}

// Covers возвращает true, если мастер умеет выполнять все запрошенные меню
func (c Capability) Covers(menuIDs []int64) bool {
	if c.AllMenus {
		return true
	}

	set := make(map[int64]struct{}, len(c.MenuIDs))
	for _, id := range c.MenuIDs {
		set[id] = struct{}{}
	}

	for _, id := range menuIDs {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// Staff мастер салона
type Staff struct {
	ID           int64
	Name         string
	DisplayOrder int
	IsActive     bool
	Capability   Capability
}

// WeeklySchedule рабочие часы мастера для одного дня недели
type WeeklySchedule struct {
	StaffID   int64
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// ScheduleOverride разовое изменение графика на конкретную дату.
// Имеет приоритет над недельным шаблоном: либо задаёт явные часы работы,
// либо помечает день выходным (IsWorking = false).
type ScheduleOverride struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	IsWorking bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// StaffSchedule всё расписание мастера, нужное для резолва одной даты
type StaffSchedule struct {
	Weekly   []WeeklySchedule
	Override *ScheduleOverride
}

// ResolveShift возвращает эффективные рабочие часы мастера на дату.
// Приоритет: разовое изменение > недельный шаблон > не работает (nil).
// Единственная точка, где применяется этот приоритет: её используют и расчёт
// доступности, и автоподбор мастера.
func ResolveShift(schedule StaffSchedule, date time.Time) *TimeRange {
	if override := schedule.Override; override != nil {
		if !override.IsWorking || override.StartTime.IsZero() || override.EndTime.IsZero() {
			return nil
		}
		return &TimeRange{Start: override.StartTime, End: override.EndTime}
	}

	weekday := date.Weekday()
	for _, ws := range schedule.Weekly {
		if ws.Weekday != weekday || !ws.IsActive {
			continue
		}
		if ws.StartTime.IsZero() || ws.EndTime.IsZero() {
			return nil
		}
		return &TimeRange{Start: ws.StartTime, End: ws.EndTime}
	}

	return nil
}
