package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapability_Covers(t *testing.T) {
	tests := []struct {
		name       string
		capability Capability
		menuIDs    []int64
		want       bool
	}{
		{name: "all menus covers everything", capability: CapabilityAll(), menuIDs: []int64{1, 2, 99}, want: true},
		{name: "exact set", capability: CapabilityOf([]int64{1, 2, 3}), menuIDs: []int64{1, 3}, want: true},
		{name: "missing menu", capability: CapabilityOf([]int64{1, 2}), menuIDs: []int64{1, 3}, want: false},
		{name: "empty request", capability: CapabilityOf([]int64{1}), menuIDs: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.capability.Covers(tt.menuIDs))
		})
	}
}

func TestCapabilityOf_EmptySetMeansAll(t *testing.T) {
	c := CapabilityOf(nil)
	assert.True(t, c.AllMenus)
	assert.True(t, c.Covers([]int64{42}))
}

func TestResolveShift(t *testing.T) {
	// 2026-09-15 — вторник
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	weekly := []WeeklySchedule{
		{Weekday: time.Tuesday, StartTime: "10:00", EndTime: "19:00", IsActive: true},
		{Weekday: time.Wednesday, StartTime: "12:00", EndTime: "20:00", IsActive: true},
	}

	t.Run("weekly template", func(t *testing.T) {
		shift := ResolveShift(StaffSchedule{Weekly: weekly}, date)
		assert.Equal(t, &TimeRange{Start: "10:00", End: "19:00"}, shift)
	})

	t.Run("no template for weekday", func(t *testing.T) {
		monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
		assert.Nil(t, ResolveShift(StaffSchedule{Weekly: weekly}, monday))
	})

	t.Run("inactive template ignored", func(t *testing.T) {
		inactive := []WeeklySchedule{
			{Weekday: time.Tuesday, StartTime: "10:00", EndTime: "19:00", IsActive: false},
		}
		assert.Nil(t, ResolveShift(StaffSchedule{Weekly: inactive}, date))
	})

	t.Run("override wins over weekly", func(t *testing.T) {
		schedule := StaffSchedule{
			Weekly: weekly,
			Override: &ScheduleOverride{
				Date:      date,
				IsWorking: true,
				StartTime: "13:00",
				EndTime:   "17:00",
			},
		}
		assert.Equal(t, &TimeRange{Start: "13:00", End: "17:00"}, ResolveShift(schedule, date))
	})

	t.Run("day off override", func(t *testing.T) {
		schedule := StaffSchedule{
			Weekly:   weekly,
			Override: &ScheduleOverride{Date: date, IsWorking: false},
		}
		assert.Nil(t, ResolveShift(schedule, date))
	})

	t.Run("no schedule at all", func(t *testing.T) {
		assert.Nil(t, ResolveShift(StaffSchedule{}, date))
	})
}
