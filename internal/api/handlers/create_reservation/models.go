package create_reservation

import (
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	createReservation "github.com/hikari-salon/reservation-service/internal/usecase/create_reservation"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "14:00"
	MenuIDs   []int64 `json:"menuIds"`
	StaffID   *int64  `json:"staffId,omitempty"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	IsFirstVisit  *bool   `json:"isFirstVisit,omitempty"`

	CouponCode       *string `json:"couponCode,omitempty"`
	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	Note             *string `json:"note,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	StaffID    int64  `json:"staffId"`
	StaffName  string `json:"staffName"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`

	Subtotal             int64 `json:"subtotal"`
	DiscountAmount       int64 `json:"discountAmount"`
	TotalPrice           int64 `json:"totalPrice"`
	TotalDurationMinutes int   `json:"totalDurationMinutes"`

	Status     string  `json:"status"`
	CouponCode *string `json:"couponCode,omitempty"`

	Items []ReservationItem `json:"items"`

	CreatedAt string `json:"createdAt"`
}

// ReservationItem одна услуга визита
type ReservationItem struct {
	MenuID          int64  `json:"menuId"`
	MenuName        string `json:"menuName"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	Category        string `json:"category"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Date:             date,
		StartTime:        startTime,
		MenuIDs:          r.MenuIDs,
		StaffID:          r.StaffID,
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		CustomerEmail:    r.CustomerEmail,
		IsFirstVisit:     r.IsFirstVisit,
		CouponCode:       r.CouponCode,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
		Note:             r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	items := make([]ReservationItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, ReservationItem{
			MenuID:          item.MenuID,
			MenuName:        item.MenuName,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
			Category:        item.Category,
		})
	}

	return &ReservationResponse{
		ID:                   resp.ID,
		CustomerID:           resp.CustomerID,
		StaffID:              resp.StaffID,
		StaffName:            resp.StaffName,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		Subtotal:             resp.Subtotal,
		DiscountAmount:       resp.DiscountAmount,
		TotalPrice:           resp.TotalPrice,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		Status:               resp.Status,
		CouponCode:           resp.CouponCode,
		Items:                items,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
	}
}
