package coupons

import (
	"context"

	"github.com/hikari-salon/reservation-service/internal/domain"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CountUsagesByCustomer(ctx context.Context, couponID, customerID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
