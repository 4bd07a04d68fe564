package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/dbmetrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/psqlbuilder"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// bookingColumns общий список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"user_id",
	"service_id",
	"pricing_tier_id",
	"employee_id",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"total_amount",
	"status",
	"payment_status",
	"gender_preference",
	"policy_id",
	"coupon_id",
	"reschedule_attempts",
	"reschedule_payment_status",
	"pending_date",
	"pending_start_time",
	"pending_employee_id",
	"cancellation_reason",
	"cancelled_at",
	"cancelled_by",
	"cancellation_fee",
	"refund_amount",
	"payment_order_id",
	"checked_in_at",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками выбранных доп. услуг.
// Если в контексте передана активная транзакция, использует её —
// при создании с проверкой доступности слота это обязательно
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"service_id",
			"pricing_tier_id",
			"employee_id",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"total_amount",
			"status",
			"payment_status",
			"gender_preference",
			"policy_id",
			"coupon_id",
			"reschedule_attempts",
			"reschedule_payment_status",
			"payment_order_id",
			"notes",
		).
		Values(
			b.UserID,
			b.ServiceID,
			b.PricingTierID,
			b.EmployeeID,
			b.AppointmentDate,
			b.StartTime,
			b.DurationMinutes,
			b.TotalAmount,
			b.Status,
			b.PaymentStatus,
			b.GenderPreference,
			b.PolicyID,
			b.CouponID,
			b.RescheduleAttempts,
			b.ReschedulePaymentStatus,
			b.PaymentOrderID,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	for _, extra := range b.Extras {
		query, args, err := psqlbuilder.Insert("booking_extras").
			Columns("booking_id", "extra_id", "quantity", "price_each", "duration_minutes").
			Values(b.ID, extra.ExtraID, extra.Quantity, extra.PriceEach, extra.DurationMinutes).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build extras insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert extra %d: %v", ErrExecQuery, extra.ExtraID, err)
		}
	}

	return b, nil
}

// GetByID получает бронирование по ID вместе с выбранными доп. услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	extras, err := r.getExtras(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	b.Extras = extras

	return b, nil
}

// GetByUser получает бронирования пользователя, опционально по статусу
func (r *Repository) GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("appointment_date DESC, start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByEmployeesAndDate получает бронирования сотрудников на дату.
// Внутри транзакции с filter.ForUpdate строки блокируются (FOR UPDATE) —
// это сериализует запись в пределах дня сотрудника, не задевая чужие дни
func (r *Repository) GetByEmployeesAndDate(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"employee_id": filter.EmployeeIDs}).
		Where(squirrel.Eq{"appointment_date": filter.Date}).
		OrderBy("start_time ASC")

	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeesAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeesAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ConfirmPayment переводит pending-бронирование в confirmed после успешной оплаты
// Условие по статусу делает операцию безопасной к повторной доставке колбэка
func (r *Repository) ConfirmPayment(ctx context.Context, id int64) error {
	return r.conditionalUpdate(ctx, "ConfirmPayment",
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusConfirmed).
			Set("payment_status", domain.PaymentPaid).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "status": domain.StatusPending}),
		id,
	)
}

// MarkPaymentFailed помечает неуспешную оплату pending-бронирования
func (r *Repository) MarkPaymentFailed(ctx context.Context, id int64) error {
	return r.conditionalUpdate(ctx, "MarkPaymentFailed",
		psqlbuilder.Update("bookings").
			Set("payment_status", domain.PaymentFailed).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "status": domain.StatusPending}),
		id,
	)
}

// Cancel отменяет бронирование, фиксируя причину, комиссию, возврат и актора
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, fee, refund float64, actorID int64) error {
	return r.conditionalUpdate(ctx, "Cancel",
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusCancelled).
			Set("cancellation_reason", reason).
			Set("cancellation_fee", fee).
			Set("refund_amount", refund).
			Set("cancelled_by", actorID).
			Set("cancelled_at", squirrel.Expr("NOW()")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}}),
		id,
	)
}

// ApplyReschedule немедленно переносит бронирование на новый слот
func (r *Repository) ApplyReschedule(ctx context.Context, id int64, date time.Time, start types.TimeString, employeeID int64) error {
	return r.conditionalUpdate(ctx, "ApplyReschedule",
		psqlbuilder.Update("bookings").
			Set("appointment_date", date).
			Set("start_time", start).
			Set("employee_id", employeeID).
			Set("reschedule_attempts", squirrel.Expr("reschedule_attempts + 1")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}}),
		id,
	)
}

// SetPendingReschedule сохраняет целевой слот переноса, ожидающего оплаты
// Основной статус не меняется: при брошенной оплате бронирование остаётся в силе
func (r *Repository) SetPendingReschedule(ctx context.Context, id int64, date time.Time, start types.TimeString, employeeID int64, orderID string) error {
	return r.conditionalUpdate(ctx, "SetPendingReschedule",
		psqlbuilder.Update("bookings").
			Set("reschedule_payment_status", domain.ReschedulePending).
			Set("pending_date", date).
			Set("pending_start_time", start).
			Set("pending_employee_id", employeeID).
			Set("payment_order_id", orderID).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}).
			Where(squirrel.Eq{"status": []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}}),
		id,
	)
}

// CompletePendingReschedule применяет оплаченный перенос:
// pending-поля становятся текущим слотом, счётчик попыток растёт
func (r *Repository) CompletePendingReschedule(ctx context.Context, id int64, total float64) error {
	return r.conditionalUpdate(ctx, "CompletePendingReschedule",
		psqlbuilder.Update("bookings").
			Set("appointment_date", squirrel.Expr("pending_date")).
			Set("start_time", squirrel.Expr("pending_start_time")).
			Set("employee_id", squirrel.Expr("pending_employee_id")).
			Set("pending_date", nil).
			Set("pending_start_time", nil).
			Set("pending_employee_id", nil).
			Set("reschedule_payment_status", domain.ReschedulePaid).
			Set("reschedule_attempts", squirrel.Expr("reschedule_attempts + 1")).
			Set("total_amount", total).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "reschedule_payment_status": domain.ReschedulePending}),
		id,
	)
}

// FailPendingReschedule отклоняет перенос (оплата не прошла или слот потерян)
func (r *Repository) FailPendingReschedule(ctx context.Context, id int64) error {
	return r.conditionalUpdate(ctx, "FailPendingReschedule",
		psqlbuilder.Update("bookings").
			Set("reschedule_payment_status", domain.RescheduleFailed).
			Set("pending_date", nil).
			Set("pending_start_time", nil).
			Set("pending_employee_id", nil).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "reschedule_payment_status": domain.ReschedulePending}),
		id,
	)
}

// SetPaymentOrder привязывает платёжный ордер к pending-бронированию
// Ордер создаётся после коммита транзакции: бронирование уже держит слот
func (r *Repository) SetPaymentOrder(ctx context.Context, id int64, orderID string) error {
	return r.conditionalUpdate(ctx, "SetPaymentOrder",
		psqlbuilder.Update("bookings").
			Set("payment_order_id", orderID).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "status": domain.StatusPending}),
		id,
	)
}

// ListConfirmedUpTo получает подтверждённые бронирования с датой визита
// не позже указанной — кандидаты для разметки no-show
func (r *Repository) ListConfirmedUpTo(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.LtOrEq{"appointment_date": date}).
		OrderBy("appointment_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedUpTo - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedUpTo - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// MarkNoShow помечает подтверждённое бронирование как no_show
// Условие по статусу делает повторный прогон свипа no-op
func (r *Repository) MarkNoShow(ctx context.Context, id int64) error {
	return r.conditionalUpdate(ctx, "MarkNoShow",
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusNoShow).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}),
		id,
	)
}

// CountUserCouponUsage считает использования купона пользователем
// Отменённые бронирования не считаются использованием
func (r *Repository) CountUserCouponUsage(ctx context.Context, couponID, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"coupon_id": couponID, "user_id": userID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountUserCouponUsage - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUserCouponUsage - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// conditionalUpdate выполняет UPDATE с условием по состоянию
// 0 затронутых строк означает либо отсутствие записи, либо неподходящее состояние
func (r *Repository) conditionalUpdate(ctx context.Context, op string, builder squirrel.UpdateBuilder, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет записи" и "не то состояние"
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrBookingNotFound
		}
		return ErrInvalidState
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

func (r *Repository) getExtras(ctx context.Context, executor DBExecutor, bookingID int64) ([]domain.BookingExtra, error) {
	query, args, err := psqlbuilder.Select("extra_id", "quantity", "price_each", "duration_minutes").
		From("booking_extras").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("extra_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getExtras - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getExtras - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	extras := make([]domain.BookingExtra, 0)
	for rows.Next() {
		var e domain.BookingExtra
		if err := rows.Scan(&e.ExtraID, &e.Quantity, &e.PriceEach, &e.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: getExtras - scan row: %v", ErrScanRow, err)
		}
		extras = append(extras, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getExtras - rows error: %v", ErrScanRow, err)
	}

	return extras, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ServiceID,
		&b.PricingTierID,
		&b.EmployeeID,
		&b.AppointmentDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.TotalAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.GenderPreference,
		&b.PolicyID,
		&b.CouponID,
		&b.RescheduleAttempts,
		&b.ReschedulePaymentStatus,
		&b.PendingDate,
		&b.PendingStartTime,
		&b.PendingEmployeeID,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.CancelledBy,
		&b.CancellationFee,
		&b.RefundAmount,
		&b.PaymentOrderID,
		&b.CheckedInAt,
		&b.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
