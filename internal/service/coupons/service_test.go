package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikari-salon/reservation-service/internal/domain"
	couponRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/coupon"
)

type mockCouponRepo struct {
	coupons map[string]*domain.Coupon
	usages  map[int64]int // customerID -> count
}

func (m *mockCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	coupon, ok := m.coupons[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return coupon, nil
}

func (m *mockCouponRepo) CountUsagesByCustomer(_ context.Context, _ int64, customerID int64) (int, error) {
	return m.usages[customerID], nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt64(v int64) *int64        { return &v }

func baseInput() ValidateInput {
	return ValidateInput{
		Code:       "WELCOME10",
		Subtotal:   13500,
		MenuIDs:    []int64{1, 2},
		Categories: []string{"cut", "color"},
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // вторник
		StartTime:  "14:00",
	}
}

func TestService_Validate_PercentageDiscount(t *testing.T) {
	repo := &mockCouponRepo{coupons: map[string]*domain.Coupon{
		"WELCOME10": {
			ID:            1,
			Code:          "WELCOME10",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: 10,
			IsActive:      true,
		},
	}}
	svc := NewService(repo, nopLogger{})

	result, err := svc.Validate(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1350), result.DiscountAmount)
	assert.Equal(t, int64(1), result.Coupon.ID)
}

func TestService_Validate_FixedDiscountCapped(t *testing.T) {
	repo := &mockCouponRepo{coupons: map[string]*domain.Coupon{
		"FLAT5000": {
			Code:          "FLAT5000",
			DiscountType:  domain.DiscountFixed,
			DiscountValue: 5000,
			IsActive:      true,
		},
	}}
	svc := NewService(repo, nopLogger{})

	input := baseInput()
	input.Code = "FLAT5000"
	input.Subtotal = 3000

	result, err := svc.Validate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), result.DiscountAmount)
}

func TestService_Validate_NotFound(t *testing.T) {
	svc := NewService(&mockCouponRepo{coupons: map[string]*domain.Coupon{}}, nopLogger{})

	_, err := svc.Validate(context.Background(), baseInput())
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestService_Validate_Restrictions(t *testing.T) {
	tests := []struct {
		name    string
		coupon  domain.Coupon
		mutate  func(*ValidateInput)
		usages  map[int64]int
		wantErr error
	}{
		{
			name:    "inactive",
			coupon:  domain.Coupon{IsActive: false, DiscountType: domain.DiscountPercentage, DiscountValue: 10},
			wantErr: ErrCouponInactive,
		},
		{
			name: "not started",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				StartsOn:      ptrTime(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
			},
			wantErr: ErrCouponNotStarted,
		},
		{
			name: "expired",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				EndsOn:        ptrTime(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)),
			},
			wantErr: ErrCouponExpired,
		},
		{
			name: "weekday not allowed",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				Weekdays:      []time.Weekday{time.Monday, time.Wednesday},
			},
			wantErr: ErrCouponWeekdayNotAllowed,
		},
		{
			name: "before time window",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				TimeFrom:      "15:00",
				TimeTo:        "18:00",
			},
			wantErr: ErrCouponTimeNotAllowed,
		},
		{
			name: "after time window",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				TimeFrom:      "10:00",
				TimeTo:        "12:00",
			},
			wantErr: ErrCouponTimeNotAllowed,
		},
		{
			name: "menu not allowed",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				MenuIDs:       []int64{99},
			},
			wantErr: ErrCouponMenuNotAllowed,
		},
		{
			name: "category allowed passes menu check",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				MenuIDs:       []int64{99},
				Categories:    []string{"color"},
			},
			wantErr: nil,
		},
		{
			name: "min subtotal",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				MinSubtotal:   20000,
			},
			wantErr: ErrCouponMinSubtotal,
		},
		{
			name: "usage limit reached",
			coupon: domain.Coupon{
				IsActive:      true,
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
				UsageLimit:    100,
				UsageCount:    100,
			},
			wantErr: ErrCouponUsageLimitReached,
		},
		{
			name: "first time only rejects returning",
			coupon: domain.Coupon{
				IsActive:            true,
				DiscountType:        domain.DiscountPercentage,
				DiscountValue:       10,
				CustomerRestriction: domain.RestrictionFirstTime,
			},
			mutate:  func(in *ValidateInput) { in.IsFirstTime = false },
			wantErr: ErrCouponFirstTimeOnly,
		},
		{
			name: "returning only rejects first time",
			coupon: domain.Coupon{
				IsActive:            true,
				DiscountType:        domain.DiscountPercentage,
				DiscountValue:       10,
				CustomerRestriction: domain.RestrictionReturning,
			},
			mutate:  func(in *ValidateInput) { in.IsFirstTime = true },
			wantErr: ErrCouponReturningOnly,
		},
		{
			name: "per customer limit reached",
			coupon: domain.Coupon{
				IsActive:         true,
				DiscountType:     domain.DiscountPercentage,
				DiscountValue:    10,
				PerCustomerLimit: 1,
			},
			mutate:  func(in *ValidateInput) { in.CustomerID = ptrInt64(7) },
			usages:  map[int64]int{7: 1},
			wantErr: ErrCouponCustomerLimitReached,
		},
		{
			name: "per customer limit skipped for new customer",
			coupon: domain.Coupon{
				IsActive:         true,
				DiscountType:     domain.DiscountPercentage,
				DiscountValue:    10,
				PerCustomerLimit: 1,
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := tt.coupon
			coupon.Code = "TEST"
			repo := &mockCouponRepo{
				coupons: map[string]*domain.Coupon{"TEST": &coupon},
				usages:  tt.usages,
			}
			svc := NewService(repo, nopLogger{})

			input := baseInput()
			input.Code = "TEST"
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			result, err := svc.Validate(context.Background(), input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, result)
		})
	}
}

func TestService_Validate_BoundaryDates(t *testing.T) {
	// Купон действует ровно в день начала и в день окончания
	coupon := &domain.Coupon{
		Code:          "SEASON",
		IsActive:      true,
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 500,
		StartsOn:      ptrTime(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		EndsOn:        ptrTime(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
	}
	svc := NewService(&mockCouponRepo{coupons: map[string]*domain.Coupon{"SEASON": coupon}}, nopLogger{})

	input := baseInput()
	input.Code = "SEASON"

	result, err := svc.Validate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.DiscountAmount)
}
