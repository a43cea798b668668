package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hikari-salon/reservation-service/internal/domain"
	"github.com/hikari-salon/reservation-service/pkg/dbmetrics"
	"github.com/hikari-salon/reservation-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с мастерами и их графиками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive получает активных мастеров с их наборами услуг.
// Порядок детерминированный: display_order, затем id — этот же порядок
// используется автоподбором мастера как правило разрешения ничьих.
func (r *Repository) GetActive(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "display_order", "is_active").
		From("staff").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("display_order ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffList := make([]*domain.Staff, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.DisplayOrder, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetActive - scan row: %v", ErrScanRow, err)
		}
		staffList = append(staffList, &s)
		ids = append(ids, s.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActive - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return staffList, nil
	}

	capabilities, err := r.getCapabilities(ctx, executor, ids)
	if err != nil {
		return nil, err
	}

	for _, s := range staffList {
		s.Capability = domain.CapabilityOf(capabilities[s.ID])
	}

	return staffList, nil
}

// GetByID получает мастера по ID вместе с набором услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "display_order", "is_active").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.DisplayOrder, &s.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	capabilities, err := r.getCapabilities(ctx, executor, []int64{s.ID})
	if err != nil {
		return nil, err
	}
	s.Capability = domain.CapabilityOf(capabilities[s.ID])

	return &s, nil
}

// GetSchedulesForDate получает расписания мастеров для одной даты:
// недельные шаблоны и разовые изменения на эту дату
func (r *Repository) GetSchedulesForDate(ctx context.Context, staffIDs []int64, date time.Time) (map[int64]domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedules := make(map[int64]domain.StaffSchedule, len(staffIDs))
	if len(staffIDs) == 0 {
		return schedules, nil
	}

	weekly, err := r.getWeekly(ctx, executor, staffIDs)
	if err != nil {
		return nil, err
	}

	overrides, err := r.getOverrides(ctx, executor, staffIDs, date)
	if err != nil {
		return nil, err
	}

	for _, id := range staffIDs {
		schedules[id] = domain.StaffSchedule{
			Weekly:   weekly[id],
			Override: overrides[id],
		}
	}

	return schedules, nil
}

// UpsertOverride создает или заменяет разовое изменение графика на дату
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_schedule_overrides").
		Columns("staff_id", "date", "is_working", "start_time", "end_time").
		Values(override.StaffID, override.Date, override.IsWorking, override.StartTime, override.EndTime).
		Suffix(`ON CONFLICT (staff_id, date) DO UPDATE SET
			is_working = EXCLUDED.is_working,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&override.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute insert: %v", ErrExecQuery, err)
	}

	return override, nil
}

// DeleteOverride удаляет разовое изменение графика, возвращая мастера
// к недельному шаблону
func (r *Repository) DeleteOverride(ctx context.Context, staffID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_schedule_overrides").
		Where(squirrel.Eq{"staff_id": staffID, "date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func (r *Repository) getCapabilities(ctx context.Context, executor dbmetrics.DBExecutor, staffIDs []int64) (map[int64][]int64, error) {
	query, args, err := psqlbuilder.Select("staff_id", "menu_id").
		From("staff_capabilities").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getCapabilities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getCapabilities - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	capabilities := make(map[int64][]int64)
	for rows.Next() {
		var staffID, menuID int64
		if err := rows.Scan(&staffID, &menuID); err != nil {
			return nil, fmt.Errorf("%w: getCapabilities - scan row: %v", ErrScanRow, err)
		}
		capabilities[staffID] = append(capabilities[staffID], menuID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getCapabilities - rows error: %v", ErrScanRow, err)
	}

	return capabilities, nil
}

func (r *Repository) getWeekly(ctx context.Context, executor dbmetrics.DBExecutor, staffIDs []int64) (map[int64][]domain.WeeklySchedule, error) {
	query, args, err := psqlbuilder.Select("staff_id", "weekday", "start_time", "end_time", "is_active").
		From("staff_weekly_schedules").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := make(map[int64][]domain.WeeklySchedule)
	for rows.Next() {
		var ws domain.WeeklySchedule
		var weekday int
		if err := rows.Scan(&ws.StaffID, &weekday, &ws.StartTime, &ws.EndTime, &ws.IsActive); err != nil {
			return nil, fmt.Errorf("%w: getWeekly - scan row: %v", ErrScanRow, err)
		}
		ws.Weekday = time.Weekday(weekday)
		weekly[ws.StaffID] = append(weekly[ws.StaffID], ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeekly - rows error: %v", ErrScanRow, err)
	}

	return weekly, nil
}

func (r *Repository) getOverrides(ctx context.Context, executor dbmetrics.DBExecutor, staffIDs []int64, date time.Time) (map[int64]*domain.ScheduleOverride, error) {
	query, args, err := psqlbuilder.Select("id", "staff_id", "date", "is_working", "start_time", "end_time").
		From("staff_schedule_overrides").
		Where(squirrel.Eq{"staff_id": staffIDs, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[int64]*domain.ScheduleOverride)
	for rows.Next() {
		var o domain.ScheduleOverride
		if err := rows.Scan(&o.ID, &o.StaffID, &o.Date, &o.IsWorking, &o.StartTime, &o.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides[o.StaffID] = &o
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}
