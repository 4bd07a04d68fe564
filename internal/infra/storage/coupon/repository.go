package coupon

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

// Repository репозиторий купонов
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
		"discount_type",
		"discount_value",
		"min_amount",
		"max_discount",
		"usage_limit",
		"usage_limit_per_user",
		"used_count",
		"valid_from",
		"valid_to",
		"applicable_service_ids",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("coupons").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Coupon
	var serviceIDsRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinAmount,
		&c.MaxDiscount,
		&c.UsageLimit,
		&c.UsageLimitPerUser,
		&c.UsedCount,
		&c.ValidFrom,
		&c.ValidTo,
		&serviceIDsRaw,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	if serviceIDsRaw != nil {
		if err := json.Unmarshal(serviceIDsRaw, &c.ApplicableServiceIDs); err != nil {
			return nil, fmt.Errorf("%w: GetByCode - decode applicable_service_ids: %v", ErrScanRow, err)
		}
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// IncrementUsage атомарно увеличивает счётчик использований.
// Условие по usage_limit страхует от гонки двух одновременных бронирований
// на последнем использовании купона.
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": 0},
			squirrel.Expr("used_count < usage_limit"),
		}).
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
