package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/dbmetrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, тарифы, допуслуги и сотрудники
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"price",
		"gender_preference_fee",
		"max_extras",
		"schedule_config_id",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&s.GenderPreferenceFee,
		&s.MaxExtras,
		&s.ScheduleConfigID,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetPricingTier получает тариф по ID
func (r *Repository) GetPricingTier(ctx context.Context, id int64) (*domain.PricingTier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_minutes",
		"price",
	).
		From("pricing_tiers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPricingTier - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.PricingTier
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.ServiceID,
		&t.Name,
		&t.DurationMinutes,
		&t.Price,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPricingTier - scan tier: %v", ErrScanRow, err)
	}

	return &t, nil
}

// GetExtras получает дополнительные услуги по списку ID.
// Возвращает ErrExtraNotFound, если хотя бы один ID отсутствует.
func (r *Repository) GetExtras(ctx context.Context, ids []int64) ([]domain.Extra, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"duration_hours",
		"duration_mins",
		"max_quantity",
	).
		From("extras").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExtras - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExtras - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	found := make(map[int64]domain.Extra, len(ids))
	for rows.Next() {
		var e domain.Extra
		if err := rows.Scan(&e.ID, &e.Name, &e.Price, &e.DurationHours, &e.DurationMins, &e.MaxQuantity); err != nil {
			return nil, fmt.Errorf("%w: GetExtras - scan extra: %v", ErrScanRow, err)
		}
		found[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExtras - iterate rows: %v", ErrScanRow, err)
	}

	// Сохраняем порядок запрошенных ID
	extras := make([]domain.Extra, 0, len(ids))
	for _, id := range ids {
		e, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: GetExtras - extra %d", ErrExtraNotFound, id)
		}
		extras = append(extras, e)
	}

	return extras, nil
}

// GetEligibleEmployees получает активных сотрудников, привязанных к услуге.
// Привязка к услуге фильтруется отдельно: сотрудника можно снять с одной
// услуги, не деактивируя его целиком
func (r *Repository) GetEligibleEmployees(ctx context.Context, serviceID int64) ([]domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"e.id",
		"e.name",
		"e.gender",
		"e.is_active",
	).
		From("employees e").
		Join("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"es.service_id": serviceID, "es.is_active": true, "e.is_active": true}).
		OrderBy("e.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEligibleEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEligibleEmployees - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Gender, &e.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetEligibleEmployees - scan employee: %v", ErrScanRow, err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEligibleEmployees - iterate rows: %v", ErrScanRow, err)
	}

	return employees, nil
}
