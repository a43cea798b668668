package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/pkg/dbmetrics"
	"github.com/hikari-salon/reservation-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с купонами и их использованиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает купон по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"discount_type",
		"discount_value",
		"min_subtotal",
		"starts_on",
		"ends_on",
		"weekdays",
		"time_from",
		"time_to",
		"menu_ids",
		"categories",
		"usage_limit",
		"usage_count",
		"per_customer_limit",
		"customer_restriction",
		"is_active",
	).
		From("coupons").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var coupon domain.Coupon
	var startsOn, endsOn sql.NullTime
	var weekdays, menuIDs pq.Int64Array
	var categories pq.StringArray

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Name,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinSubtotal,
		&startsOn,
		&endsOn,
		&weekdays,
		&coupon.TimeFrom,
		&coupon.TimeTo,
		&menuIDs,
		&categories,
		&coupon.UsageLimit,
		&coupon.UsageCount,
		&coupon.PerCustomerLimit,
		&coupon.CustomerRestriction,
		&coupon.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	if startsOn.Valid {
		coupon.StartsOn = &startsOn.Time
	}
	if endsOn.Valid {
		coupon.EndsOn = &endsOn.Time
	}
	coupon.MenuIDs = menuIDs
	coupon.Categories = categories
	coupon.Weekdays = make([]time.Weekday, len(weekdays))
	for i, d := range weekdays {
		coupon.Weekdays[i] = time.Weekday(d)
	}

	return &coupon, nil
}

// CountUsagesByCustomer возвращает число применений купона конкретным клиентом
func (r *Repository) CountUsagesByCustomer(ctx context.Context, couponID, customerID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("coupon_usages").
		Where(squirrel.Eq{"coupon_id": couponID, "customer_id": customerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUsagesByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUsagesByCustomer - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// IncrementUsage атомарно увеличивает счётчик использований купона.
// Проверка лимита и инкремент выполняются одним UPDATE: при исчерпанном
// лимите строка не обновляется и возвращается ErrUsageLimitReached.
// Вызывается внутри транзакции создания визита.
func (r *Repository) IncrementUsage(ctx context.Context, couponID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("usage_count", squirrel.Expr("usage_count + 1")).
		Where(squirrel.Eq{"id": couponID}).
		Where(squirrel.Expr("(usage_limit = 0 OR usage_count < usage_limit)")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUsageLimitReached
	}

	return nil
}

// RecordUsage фиксирует применение купона к визиту
func (r *Repository) RecordUsage(ctx context.Context, usage *domain.CouponUsage) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupon_usages").
		Columns("coupon_id", "customer_id", "reservation_id").
		Values(usage.CouponID, usage.CustomerID, usage.ReservationID).
		Suffix("RETURNING id, used_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordUsage - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&usage.ID, &usage.UsedAt); err != nil {
		return fmt.Errorf("%w: RecordUsage - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
