package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/pkg/dbmetrics"
	"github.com/lensbook/PhotoBookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий рабочих часов и выходных дней студии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOperatingWindow возвращает строку рабочих часов для дня недели.
// Если строки нет, возвращает (nil, nil) - день считается нерабочим.
func (r *Repository) GetOperatingWindow(ctx context.Context, weekday time.Weekday) (*domain.OperatingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"open_time",
		"close_time",
		"is_active",
	).
		From("operating_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		// Активная строка в приоритете
		OrderBy("is_active DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingWindow - build select query: %v", ErrBuildQuery, err)
	}

	var window domain.OperatingWindow
	var wd int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&wd,
		&window.OpenTime,
		&window.CloseTime,
		&window.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingWindow - scan window: %v", ErrScanRow, err)
	}

	window.Weekday = time.Weekday(wd)
	return &window, nil
}

// ListOperatingWindows возвращает все строки рабочих часов по дням недели
func (r *Repository) ListOperatingWindows(ctx context.Context) ([]*domain.OperatingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"open_time",
		"close_time",
		"is_active",
	).
		From("operating_hours").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.OperatingWindow, 0)
	for rows.Next() {
		var window domain.OperatingWindow
		var wd int

		if err := rows.Scan(&window.ID, &wd, &window.OpenTime, &window.CloseTime, &window.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListOperatingWindows - scan row: %v", ErrScanRow, err)
		}

		window.Weekday = time.Weekday(wd)
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOperatingWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// IsHoliday проверяет наличие активной записи о выходном на дату
func (r *Repository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("holidays").
		Where(squirrel.Eq{
			"holiday_date": date,
			"is_active":    true,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsHoliday - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsHoliday - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
