package coupons

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон с таким кодом не существует
	ErrCouponNotFound = errors.New("coupons: coupon not found")

	// ErrCouponInactive возвращается, когда купон отключён
	ErrCouponInactive = errors.New("coupons: coupon is inactive")

	// ErrCouponNotStarted возвращается до начала срока действия купона
	ErrCouponNotStarted = errors.New("coupons: coupon is not active yet")

	// ErrCouponExpired возвращается после окончания срока действия купона
	ErrCouponExpired = errors.New("coupons: coupon has expired")

	// ErrCouponWeekdayNotAllowed возвращается, когда купон не действует в этот день недели
	ErrCouponWeekdayNotAllowed = errors.New("coupons: coupon is not valid on this weekday")

	// ErrCouponTimeNotAllowed возвращается вне временного окна купона
	ErrCouponTimeNotAllowed = errors.New("coupons: coupon is not valid at this time")

	// ErrCouponMenuNotAllowed возвращается, когда ни одно меню визита не входит
	// в допустимый набор купона
	ErrCouponMenuNotAllowed = errors.New("coupons: coupon is not applicable to selected menus")

	// ErrCouponMinSubtotal возвращается, когда сумма визита меньше минимальной
	ErrCouponMinSubtotal = errors.New("coupons: subtotal is below coupon minimum")

	// ErrCouponUsageLimitReached возвращается при исчерпанном общем лимите
	ErrCouponUsageLimitReached = errors.New("coupons: coupon usage limit reached")

	// ErrCouponCustomerLimitReached возвращается при исчерпанном лимите клиента
	ErrCouponCustomerLimitReached = errors.New("coupons: coupon usage limit for customer reached")

	// ErrCouponFirstTimeOnly возвращается, когда купон только для новых клиентов
	ErrCouponFirstTimeOnly = errors.New("coupons: coupon is for first-time customers only")

	// ErrCouponReturningOnly возвращается, когда купон только для постоянных клиентов
	ErrCouponReturningOnly = errors.New("coupons: coupon is for returning customers only")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("coupons: internal error")
)
