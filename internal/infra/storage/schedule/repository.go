package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/dbmetrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий конфигураций расписания
// working_days и break_times хранятся JSON-колонками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var configColumns = []string{
	"id",
	"name",
	"start_time",
	"end_time",
	"working_days",
	"break_times",
	"buffer_time_minutes",
	"min_advance_hours",
	"max_advance_days",
	"no_show_minutes",
	"is_default",
	"created_at",
	"updated_at",
}

// GetByID получает конфигурацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetDefault получает конфигурацию по умолчанию
func (r *Repository) GetDefault(ctx context.Context) (*domain.ScheduleConfig, error) {
	return r.getOne(ctx, squirrel.Eq{"is_default": true})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var workingDaysRaw, breakTimesRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.StartTime,
		&cfg.EndTime,
		&workingDaysRaw,
		&breakTimesRaw,
		&cfg.BufferTimeMinutes,
		&cfg.MinAdvanceHours,
		&cfg.MaxAdvanceDays,
		&cfg.NoShowMinutes,
		&cfg.IsDefault,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan config: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(workingDaysRaw, &cfg.WorkingDays); err != nil {
		return nil, fmt.Errorf("%w: getOne - decode working_days: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(breakTimesRaw, &cfg.BreakTimes); err != nil {
		return nil, fmt.Errorf("%w: getOne - decode break_times: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Update обновляет редактируемые поля конфигурации
func (r *Repository) Update(ctx context.Context, cfg *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingDaysRaw, err := json.Marshal(cfg.WorkingDays)
	if err != nil {
		return fmt.Errorf("%w: Update - encode working_days: %v", ErrBuildQuery, err)
	}
	breakTimesRaw, err := json.Marshal(cfg.BreakTimes)
	if err != nil {
		return fmt.Errorf("%w: Update - encode break_times: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("schedule_configs").
		Set("name", cfg.Name).
		Set("start_time", cfg.StartTime).
		Set("end_time", cfg.EndTime).
		Set("working_days", workingDaysRaw).
		Set("break_times", breakTimesRaw).
		Set("buffer_time_minutes", cfg.BufferTimeMinutes).
		Set("min_advance_hours", cfg.MinAdvanceHours).
		Set("max_advance_days", cfg.MaxAdvanceDays).
		Set("no_show_minutes", cfg.NoShowMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// GetOverrideByService получает частичное переопределение расписания для услуги
func (r *Repository) GetOverrideByService(ctx context.Context, serviceID int64) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"start_time",
		"end_time",
		"working_days",
		"break_times",
		"buffer_time_minutes",
		"min_advance_hours",
		"max_advance_days",
		"no_show_minutes",
	).
		From("schedule_config_overrides").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByService - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.ScheduleOverride
	var workingDaysRaw, breakTimesRaw []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.ServiceID,
		&o.StartTime,
		&o.EndTime,
		&workingDaysRaw,
		&breakTimesRaw,
		&o.BufferTimeMinutes,
		&o.MinAdvanceHours,
		&o.MaxAdvanceDays,
		&o.NoShowMinutes,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByService - scan override: %v", ErrScanRow, err)
	}

	if workingDaysRaw != nil {
		if err := json.Unmarshal(workingDaysRaw, &o.WorkingDays); err != nil {
			return nil, fmt.Errorf("%w: GetOverrideByService - decode working_days: %v", ErrScanRow, err)
		}
	}
	if breakTimesRaw != nil {
		if err := json.Unmarshal(breakTimesRaw, &o.BreakTimes); err != nil {
			return nil, fmt.Errorf("%w: GetOverrideByService - decode break_times: %v", ErrScanRow, err)
		}
	}

	return &o, nil
}
