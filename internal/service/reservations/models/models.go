package models

import (
	"errors"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса визита
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetReservationsRequest запрос на выборку визитов администратором
type GetReservationsRequest struct {
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате (опционально)
	StaffID         *int64     `json:"staffId,omitempty"`         // Фильтр по мастеру (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no-show визиты
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		Date:            r.Date,
		StaffID:         r.StaffID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationItemResponse позиция визита
type ReservationItemResponse struct {
	MenuID          int64  `json:"menuId"`
	MenuName        string `json:"menuName"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	Category        string `json:"category"`
}

// ReservationResponse ответ с данными визита
type ReservationResponse struct {
	ID                   int64  `json:"id"`
	CustomerID           int64  `json:"customerId"`
	StaffID              int64  `json:"staffId"`
	Date                 string `json:"date"`      // "2026-09-15"
	StartTime            string `json:"startTime"` // "14:00"
	EndTime              string `json:"endTime"`   // "16:30"
	TotalPrice           int64  `json:"totalPrice"`
	TotalDurationMinutes int    `json:"totalDurationMinutes"`
	Status               string `json:"status"`

	CouponID       *int64 `json:"couponId,omitempty"`
	DiscountAmount int64  `json:"discountAmount"`

	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	Note             *string `json:"note,omitempty"`

	Items []ReservationItemResponse `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком визитов
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	items := make([]ReservationItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ReservationItemResponse{
			MenuID:          item.MenuID,
			MenuName:        item.MenuName,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
			Category:        item.Category,
		})
	}

	return &ReservationResponse{
		ID:                   r.ID,
		CustomerID:           r.CustomerID,
		StaffID:              r.StaffID,
		Date:                 r.Date.Format(domain.DateFormat),
		StartTime:            r.StartTime.String(),
		EndTime:              r.EndTime.String(),
		TotalPrice:           r.TotalPrice,
		TotalDurationMinutes: r.TotalDurationMinutes,
		Status:               string(r.Status),
		CouponID:             r.CouponID,
		DiscountAmount:       r.DiscountAmount,
		PaymentMethod:        r.PaymentMethod,
		PaymentReference:     r.PaymentReference,
		Note:                 r.Note,
		Items:                items,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: result}
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status, ok := domain.ParseReservationStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}
