package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/dbmetrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий политик отмены/переноса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var policyColumns = []string{
	"id",
	"name",
	"policy_type",
	"cancellation_window_hours",
	"late_cancellation_window_hours",
	"late_cancellation_fee",
	"reschedule_window_hours",
	"reschedule_fee",
	"max_reschedule_attempts",
	"no_show_minutes",
	"notify_on_cancel",
	"notify_on_reschedule",
	"admin_override_full_refund",
	"created_at",
	"updated_at",
}

// GetByID получает политику по ID.
// Бронирование ссылается на политику, действовавшую в момент создания,
// поэтому чтение по ID — единственный путь оценки отмены/переноса.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingPolicy, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetActive получает действующую политику для новых бронирований
func (r *Repository) GetActive(ctx context.Context) (*domain.BookingPolicy, error) {
	return r.getOne(ctx, squirrel.Eq{"is_active": true})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("booking_policies").
		Where(where).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.PolicyType,
		&p.CancellationWindowHours,
		&p.LateCancellationWindowHours,
		&p.LateCancellationFee,
		&p.RescheduleWindowHours,
		&p.RescheduleFee,
		&p.MaxRescheduleAttempts,
		&p.NoShowMinutes,
		&p.NotifyOnCancel,
		&p.NotifyOnReschedule,
		&p.AdminOverrideFullRefund,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan policy: %v", ErrScanRow, err)
	}

	// Нераспознанный тип политики — ошибка данных, не повод для дефолта
	if !p.PolicyType.Valid() {
		return nil, fmt.Errorf("%w: getOne - unknown policy_type %q", ErrScanRow, p.PolicyType)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
