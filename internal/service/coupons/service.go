package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	couponRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/coupon"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// ValidateInput данные для проверки применимости купона
type ValidateInput struct {
	Code        string
	Subtotal    int64
	CustomerID  *int64 // nil, если клиент ещё не существует (первое бронирование)
	MenuIDs     []int64
	Categories  []string
	Date        time.Time
	StartTime   types.TimeString
	IsFirstTime bool
}

// ValidateResult результат успешной проверки купона
type ValidateResult struct {
	Coupon         *domain.Coupon
	DiscountAmount int64
}

// Service валидатор купонов.
// Проверяет все ограничения купона и считает размер скидки. Проверка здесь —
// быстрый отказ до транзакции; авторитетная проверка общего лимита происходит
// при инкременте счётчика внутри транзакции создания визита.
type Service struct {
	couponRepo CouponRepository
	logger     Logger
}

// NewService создает новый экземпляр валидатора купонов
func NewService(couponRepo CouponRepository, logger Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// Validate проверяет применимость купона и возвращает размер скидки.
// Гарантирует 0 <= DiscountAmount <= Subtotal.
func (s *Service) Validate(ctx context.Context, input ValidateInput) (*ValidateResult, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, input.Code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("Validate: coupon code=%s not found", input.Code)
			return nil, ErrCouponNotFound
		}
		s.logger.Error("Validate: failed to get coupon code=%s: %v", input.Code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if err := s.checkRestrictions(ctx, coupon, input); err != nil {
		s.logger.Warn("Validate: coupon code=%s rejected: %v", input.Code, err)
		return nil, err
	}

	discount := coupon.DiscountFor(input.Subtotal)
	s.logger.Info("Validate: coupon code=%s accepted, subtotal=%d, discount=%d",
		input.Code, input.Subtotal, discount)

	return &ValidateResult{
		Coupon:         coupon,
		DiscountAmount: discount,
	}, nil
}

func (s *Service) checkRestrictions(ctx context.Context, coupon *domain.Coupon, input ValidateInput) error {
	if !coupon.IsActive {
		return ErrCouponInactive
	}

	day := truncateToDay(input.Date)
	if coupon.StartsOn != nil && day.Before(truncateToDay(*coupon.StartsOn)) {
		return ErrCouponNotStarted
	}
	if coupon.EndsOn != nil && day.After(truncateToDay(*coupon.EndsOn)) {
		return ErrCouponExpired
	}

	if len(coupon.Weekdays) > 0 && !weekdayAllowed(coupon.Weekdays, input.Date.Weekday()) {
		return ErrCouponWeekdayNotAllowed
	}

	if !coupon.TimeFrom.IsZero() && input.StartTime.IsBefore(coupon.TimeFrom) {
		return ErrCouponTimeNotAllowed
	}
	if !coupon.TimeTo.IsZero() && input.StartTime.IsAfter(coupon.TimeTo) {
		return ErrCouponTimeNotAllowed
	}

	if !menusAllowed(coupon, input.MenuIDs, input.Categories) {
		return ErrCouponMenuNotAllowed
	}

	if input.Subtotal < coupon.MinSubtotal {
		return ErrCouponMinSubtotal
	}

	if coupon.IsExhausted() {
		return ErrCouponUsageLimitReached
	}

	switch coupon.CustomerRestriction {
	case domain.RestrictionFirstTime:
		if !input.IsFirstTime {
			return ErrCouponFirstTimeOnly
		}
	case domain.RestrictionReturning:
		if input.IsFirstTime {
			return ErrCouponReturningOnly
		}
	}

	if coupon.PerCustomerLimit > 0 && input.CustomerID != nil {
		count, err := s.couponRepo.CountUsagesByCustomer(ctx, coupon.ID, *input.CustomerID)
		if err != nil {
			return fmt.Errorf("%w: failed to count usages: %v", ErrInternal, err)
		}
		if count >= coupon.PerCustomerLimit {
			return ErrCouponCustomerLimitReached
		}
	}

	return nil
}

// menusAllowed возвращает true, если хотя бы одно меню визита подпадает
// под ограничения купона. Пустые наборы означают отсутствие ограничения.
func menusAllowed(coupon *domain.Coupon, menuIDs []int64, categories []string) bool {
	if len(coupon.MenuIDs) == 0 && len(coupon.Categories) == 0 {
		return true
	}

	for _, allowed := range coupon.MenuIDs {
		for _, id := range menuIDs {
			if id == allowed {
				return true
			}
		}
	}

	for _, allowed := range coupon.Categories {
		for _, category := range categories {
			if category == allowed {
				return true
			}
		}
	}

	return false
}

func weekdayAllowed(weekdays []time.Weekday, weekday time.Weekday) bool {
	for _, wd := range weekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
