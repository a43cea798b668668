package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/pkg/dbmetrics"
	"github.com/hikari-salon/reservation-service/pkg/psqlbuilder"
)

const pqExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"customer_id",
	"staff_id",
	"date",
	"start_time",
	"end_time",
	"total_price",
	"total_duration_minutes",
	"status",
	"coupon_id",
	"discount_amount",
	"payment_method",
	"payment_reference",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с визитами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает визит вместе с позициями.
// Вызывается только внутри транзакции (usecase создания бронирования):
// вставка визита и его позиций должна быть атомарной.
// Нарушение exclusion constraint по пересечению времени мастера
// транслируется в ErrStaffTimeConflict.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_id",
			"staff_id",
			"date",
			"start_time",
			"end_time",
			"total_price",
			"total_duration_minutes",
			"status",
			"coupon_id",
			"discount_amount",
			"payment_method",
			"payment_reference",
			"note",
		).
		Values(
			reservation.CustomerID,
			reservation.StaffID,
			reservation.Date,
			reservation.StartTime,
			reservation.EndTime,
			reservation.TotalPrice,
			reservation.TotalDurationMinutes,
			reservation.Status,
			reservation.CouponID,
			reservation.DiscountAmount,
			reservation.PaymentMethod,
			reservation.PaymentReference,
			reservation.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrStaffTimeConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	for i := range reservation.Items {
		item := &reservation.Items[i]
		item.ReservationID = reservation.ID
		if err := r.createItem(ctx, executor, item); err != nil {
			return nil, err
		}
	}

	return reservation, nil
}

// createItem вставляет одну позицию визита
func (r *Repository) createItem(ctx context.Context, executor DBExecutor, item *domain.ReservationItem) error {
	query, args, err := psqlbuilder.Insert("reservation_items").
		Columns(
			"reservation_id",
			"menu_id",
			"menu_name",
			"price",
			"duration_minutes",
			"category",
			"sort_order",
		).
		Values(
			item.ReservationID,
			item.MenuID,
			item.MenuName,
			item.Price,
			item.DurationMinutes,
			item.Category,
			item.SortOrder,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("%w: createItem - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает визит по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	items, err := r.getItems(ctx, executor, []int64{reservation.ID})
	if err != nil {
		return nil, err
	}
	reservation.Items = items[reservation.ID]

	return reservation, nil
}

// GetByFilter получает визиты с фильтрацией по дате, мастеру и статусу.
// Внутри транзакции при фильтре по конкретной дате строки блокируются
// (FOR UPDATE) — это чтение используется проверкой пересечений перед записью.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса отдаём только занимающие время визиты
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(domain.StatusConfirmed)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC, id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
		ids = append(ids, reservation.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %v", ErrScanRow, err)
	}

	if len(ids) > 0 {
		items, err := r.getItems(ctx, executor, ids)
		if err != nil {
			return nil, err
		}
		for _, reservation := range reservations {
			reservation.Items = items[reservation.ID]
		}
	}

	return reservations, nil
}

// UpdateStatus обновляет статус визита
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrStaffTimeConflict
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// getItems загружает позиции визитов одним запросом
func (r *Repository) getItems(ctx context.Context, executor DBExecutor, reservationIDs []int64) (map[int64][]domain.ReservationItem, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"menu_id",
		"menu_name",
		"price",
		"duration_minutes",
		"category",
		"sort_order",
	).
		From("reservation_items").
		Where(squirrel.Eq{"reservation_id": reservationIDs}).
		OrderBy("reservation_id ASC, sort_order ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.ReservationItem)
	for rows.Next() {
		var item domain.ReservationItem
		err := rows.Scan(
			&item.ID,
			&item.ReservationID,
			&item.MenuID,
			&item.MenuName,
			&item.Price,
			&item.DurationMinutes,
			&item.Category,
			&item.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getItems - scan row: %v", ErrScanRow, err)
		}
		items[item.ReservationID] = append(items[item.ReservationID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку визита
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.CustomerID,
		&reservation.StaffID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.TotalPrice,
		&reservation.TotalDurationMinutes,
		&reservation.Status,
		&reservation.CouponID,
		&reservation.DiscountAmount,
		&reservation.PaymentMethod,
		&reservation.PaymentReference,
		&reservation.Note,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanReservation - scan row: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// isExclusionViolation распознаёт нарушение exclusion constraint (SQLSTATE 23P01)
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}
