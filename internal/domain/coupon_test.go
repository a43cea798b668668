package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_DiscountFor(t *testing.T) {
	tests := []struct {
		name     string
		coupon   Coupon
		subtotal int64
		want     int64
	}{
		{
			name:     "percentage",
			coupon:   Coupon{DiscountType: DiscountPercentage, DiscountValue: 10},
			subtotal: 13500,
			want:     1350,
		},
		{
			name:     "percentage rounds down",
			coupon:   Coupon{DiscountType: DiscountPercentage, DiscountValue: 10},
			subtotal: 5555,
			want:     555,
		},
		{
			name:     "fixed",
			coupon:   Coupon{DiscountType: DiscountFixed, DiscountValue: 2000},
			subtotal: 13500,
			want:     2000,
		},
		{
			name:     "fixed capped at subtotal",
			coupon:   Coupon{DiscountType: DiscountFixed, DiscountValue: 5000},
			subtotal: 3000,
			want:     3000,
		},
		{
			name:     "zero subtotal",
			coupon:   Coupon{DiscountType: DiscountPercentage, DiscountValue: 50},
			subtotal: 0,
			want:     0,
		},
		{
			name:     "hundred percent",
			coupon:   Coupon{DiscountType: DiscountPercentage, DiscountValue: 100},
			subtotal: 8000,
			want:     8000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.DiscountFor(tt.subtotal))
		})
	}
}

func TestCoupon_UsageLimits(t *testing.T) {
	unlimited := Coupon{UsageLimit: 0, UsageCount: 1000}
	assert.False(t, unlimited.HasGlobalLimit())
	assert.False(t, unlimited.IsExhausted())

	limited := Coupon{UsageLimit: 100, UsageCount: 99}
	assert.True(t, limited.HasGlobalLimit())
	assert.False(t, limited.IsExhausted())

	limited.UsageCount = 100
	assert.True(t, limited.IsExhausted())
}
