package calendar

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

const pqUniqueViolation = "23505"

// Repository репозиторий календарных исключений: праздники и особые дни
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDayCalendar получает все календарные исключения одной даты
func (r *Repository) GetDayCalendar(ctx context.Context, date time.Time) (domain.DayCalendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	holidays, err := r.getHolidays(ctx, executor, date)
	if err != nil {
		return domain.DayCalendar{}, err
	}

	specialDay, err := r.getSpecialOpenDay(ctx, executor, date)
	if err != nil {
		return domain.DayCalendar{}, err
	}

	return domain.DayCalendar{
		Holidays:       holidays,
		SpecialOpenDay: specialDay,
	}, nil
}

// CreateHoliday создает праздник или закрытие
func (r *Repository) CreateHoliday(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("date", "name", "start_time", "end_time").
		Values(holiday.Date, holiday.Name, holiday.StartTime, holiday.EndTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&holiday.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - execute insert: %v", ErrExecQuery, err)
	}

	return holiday, nil
}

// DeleteHoliday удаляет праздник и возвращает его дату
func (r *Repository) DeleteHoliday(ctx context.Context, id int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holidays").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING date").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: DeleteHoliday - build delete query: %v", ErrBuildQuery, err)
	}

	var date time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrHolidayNotFound
		}
		return time.Time{}, fmt.Errorf("%w: DeleteHoliday - execute delete: %v", ErrExecQuery, err)
	}

	return date, nil
}

// CreateSpecialOpenDay создает особый день открытия
func (r *Repository) CreateSpecialOpenDay(ctx context.Context, day *domain.SpecialOpenDay) (*domain.SpecialOpenDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("special_open_days").
		Columns("date", "start_time", "end_time").
		Values(day.Date, day.StartTime, day.EndTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialOpenDay - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateSpecialOpenDay
		}
		return nil, fmt.Errorf("%w: CreateSpecialOpenDay - execute insert: %v", ErrExecQuery, err)
	}

	return day, nil
}

// DeleteSpecialOpenDay удаляет особый день и возвращает его дату
func (r *Repository) DeleteSpecialOpenDay(ctx context.Context, id int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("special_open_days").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING date").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: DeleteSpecialOpenDay - build delete query: %v", ErrBuildQuery, err)
	}

	var date time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrSpecialOpenDayNotFound
		}
		return time.Time{}, fmt.Errorf("%w: DeleteSpecialOpenDay - execute delete: %v", ErrExecQuery, err)
	}

	return date, nil
}

func (r *Repository) getHolidays(ctx context.Context, executor dbmetrics.DBExecutor, date time.Time) ([]domain.Holiday, error) {
	query, args, err := psqlbuilder.Select("id", "date", "name", "start_time", "end_time").
		From("holidays").
		Where(squirrel.Eq{"date": date}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.StartTime, &h.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getHolidays - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getHolidays - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

func (r *Repository) getSpecialOpenDay(ctx context.Context, executor dbmetrics.DBExecutor, date time.Time) (*domain.SpecialOpenDay, error) {
	query, args, err := psqlbuilder.Select("id", "date", "start_time", "end_time").
		From("special_open_days").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSpecialOpenDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.SpecialOpenDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.Date, &day.StartTime, &day.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getSpecialOpenDay - scan row: %v", ErrScanRow, err)
	}

	return &day, nil
}
