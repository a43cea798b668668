package domain

import (
	"time"

	"github.com/hikari-salon/reservation-service/pkg/types"
)

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// CustomerRestriction ограничение купона по типу клиента
type CustomerRestriction string

const (
	RestrictionNone      CustomerRestriction = "none"
	RestrictionFirstTime CustomerRestriction = "first_time"
	RestrictionReturning CustomerRestriction = "returning"
)

// Coupon купон на скидку с правилами применимости
type Coupon struct {
	ID            int64
	Code          string
	Name          string
	DiscountType  DiscountType
	DiscountValue int64 // проценты для percentage, иены для fixed

	MinSubtotal int64
	StartsOn    *time.Time
	EndsOn      *time.Time

	// Пустые наборы означают отсутствие ограничения
	Weekdays   []time.Weekday
	TimeFrom   types.TimeString
	TimeTo     types.TimeString
	MenuIDs    []int64
	Categories []string

	UsageLimit          int // 0 = без ограничения
	UsageCount          int
	PerCustomerLimit    int // 0 = без ограничения
	CustomerRestriction CustomerRestriction
	IsActive            bool
}

// DiscountFor возвращает размер скидки для суммы subtotal.
// Результат всегда в пределах [0, subtotal].
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}

	var discount int64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal * c.DiscountValue / 100
	case DiscountFixed:
		discount = c.DiscountValue
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}

// HasGlobalLimit возвращает true, если у купона есть общий лимит использований
func (c *Coupon) HasGlobalLimit() bool {
	return c.UsageLimit > 0
}

// IsExhausted возвращает true, если общий лимит использований исчерпан
func (c *Coupon) IsExhausted() bool {
	return c.HasGlobalLimit() && c.UsageCount >= c.UsageLimit
}

// CouponUsage факт применения купона к визиту
type CouponUsage struct {
	ID            int64
	CouponID      int64
	CustomerID    int64
	ReservationID int64
	UsedAt        time.Time
}
