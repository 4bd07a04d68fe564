package invoice

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/dbmetrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий счетов.
// Счета только создаются и читаются: снимок расчёта неизменяем.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var invoiceColumns = []string{
	"id",
	"number",
	"booking_id",
	"kind",
	"base_amount",
	"extras_amount",
	"gender_fee",
	"coupon_code",
	"discount_amount",
	"fee_amount",
	"total_amount",
	"created_at",
}

// Create сохраняет новый счёт и возвращает присвоенный ID
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"number",
			"booking_id",
			"kind",
			"base_amount",
			"extras_amount",
			"gender_fee",
			"coupon_code",
			"discount_amount",
			"fee_amount",
			"total_amount",
		).
		Values(
			inv.Number,
			inv.BookingID,
			inv.Kind,
			inv.BaseAmount,
			inv.ExtrasAmount,
			inv.GenderFee,
			inv.CouponCode,
			inv.DiscountAmount,
			inv.FeeAmount,
			inv.TotalAmount,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// GetByBookingID получает все счета бронирования в порядке создания
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		err := rows.Scan(
			&inv.ID,
			&inv.Number,
			&inv.BookingID,
			&inv.Kind,
			&inv.BaseAmount,
			&inv.ExtrasAmount,
			&inv.GenderFee,
			&inv.CouponCode,
			&inv.DiscountAmount,
			&inv.FeeAmount,
			&inv.TotalAmount,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan invoice: %v", ErrScanRow, err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - iterate rows: %v", ErrScanRow, err)
	}

	return invoices, nil
}
