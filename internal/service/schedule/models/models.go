package models

import (
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// Request модели

// UpsertOverrideRequest запрос на разовое изменение графика мастера.
// Нулевые времена при IsWorking=false означают выходной.
type UpsertOverrideRequest struct {
	StaffID   int64
	Date      time.Time
	IsWorking bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// CreateHolidayRequest запрос на создание праздника или закрытия.
// Нулевые времена означают закрытие на весь день.
type CreateHolidayRequest struct {
	Date      time.Time
	Name      string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// CreateSpecialOpenDayRequest запрос на открытие в выходной день.
// Нулевые времена означают обычные часы этого дня недели.
type CreateSpecialOpenDayRequest struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модели

// OverrideResponse разовое изменение графика
type OverrideResponse struct {
	ID        int64  `json:"id"`
	StaffID   int64  `json:"staffId"`
	Date      string `json:"date"`
	IsWorking bool   `json:"isWorking"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// HolidayResponse праздник или закрытие
type HolidayResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// SpecialOpenDayResponse особый день открытия
type SpecialOpenDayResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// Методы конвертации

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.ScheduleOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		ID:        o.ID,
		StaffID:   o.StaffID,
		Date:      o.Date.Format(domain.DateFormat),
		IsWorking: o.IsWorking,
		StartTime: o.StartTime.String(),
		EndTime:   o.EndTime.String(),
	}
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}
	return &HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format(domain.DateFormat),
		Name:      h.Name,
		StartTime: h.StartTime.String(),
		EndTime:   h.EndTime.String(),
	}
}

// FromDomainSpecialOpenDay конвертирует domain модель в DTO
func FromDomainSpecialOpenDay(d *domain.SpecialOpenDay) *SpecialOpenDayResponse {
	if d == nil {
		return nil
	}
	return &SpecialOpenDayResponse{
		ID:        d.ID,
		Date:      d.Date.Format(domain.DateFormat),
		StartTime: d.StartTime.String(),
		EndTime:   d.EndTime.String(),
	}
}
