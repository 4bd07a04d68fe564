package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

// bookingRow строка таблицы bookings для подстановки в мок
func bookingRow(id int64) *sqlmock.Rows {
	employeeID := int64(2)
	policyID := int64(1)
	return sqlmock.NewRows([]string{
		"id", "user_id", "service_id", "pricing_tier_id", "employee_id",
		"appointment_date", "start_time", "duration_minutes", "total_amount",
		"status", "payment_status", "gender_preference", "policy_id", "coupon_id",
		"reschedule_attempts", "reschedule_payment_status",
		"pending_date", "pending_start_time", "pending_employee_id",
		"cancellation_reason", "cancelled_at", "cancelled_by",
		"cancellation_fee", "refund_amount", "payment_order_id",
		"checked_in_at", "notes", "created_at", "updated_at",
	}).AddRow(
		id, int64(42), int64(1), nil, employeeID,
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "10:00", 60, 1500.0,
		"confirmed", "paid", "none", policyID, nil,
		0, "not_required",
		nil, nil, nil,
		nil, nil, nil,
		0.0, 0.0, "ord-1",
		nil, nil, time.Now(), time.Now(),
	)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id =").
		WithArgs(int64(10)).
		WillReturnRows(bookingRow(10))
	mock.ExpectQuery("SELECT (.+) FROM booking_extras").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"extra_id", "quantity", "price_each", "duration_minutes"}).
			AddRow(int64(5), 2, 200.0, 30))

	got, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, int64(2), *got.EmployeeID)
	assert.Nil(t, got.PricingTierID)
	require.Len(t, got.Extras, 1)
	assert.Equal(t, int64(5), got.Extras[0].ExtraID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByUser_StatusFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	status := domain.StatusConfirmed
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id = (.+) AND status =").
		WithArgs(int64(42), "confirmed").
		WillReturnRows(bookingRow(10))

	got, err := repo.GetByUser(context.Background(), domain.UserBookingsFilter{UserID: 42, Status: &status})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ConfirmPayment(context.Background(), 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment_AlreadyConfirmed(t *testing.T) {
	repo, mock := newMockRepo(t)

	// 0 строк, но запись существует: не то состояние
	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings WHERE id =").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	err := repo.ConfirmPayment(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmPayment_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	err := repo.ConfirmPayment(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_PassesDecision(t *testing.T) {
	repo, mock := newMockRepo(t)

	reason := "по просьбе клиента"
	mock.ExpectExec("UPDATE bookings SET").
		WithArgs("cancelled", &reason, 200.0, 1300.0, int64(42), int64(10), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 10, &reason, 200, 1300, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkNoShow_Idempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings WHERE id =").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	// Повторный прогон свипа по уже размеченному бронированию
	err := repo.MarkNoShow(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCountUserCouponUsage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT(.+) FROM bookings").
		WithArgs(int64(3), int64(42), "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	got, err := repo.CountUserCouponUsage(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestCreate_ReturnsGeneratedID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(101), now, now))
	mock.ExpectExec("INSERT INTO booking_extras").
		WithArgs(int64(101), int64(5), 2, 200.0, 30).
		WillReturnResult(sqlmock.NewResult(1, 1))

	employeeID := int64(2)
	b := &domain.Booking{
		UserID:                  42,
		ServiceID:               1,
		EmployeeID:              &employeeID,
		AppointmentDate:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:               "10:00",
		DurationMinutes:         60,
		TotalAmount:             1500,
		Status:                  domain.StatusPending,
		PaymentStatus:           domain.PaymentPending,
		GenderPreference:        domain.PreferenceNone,
		ReschedulePaymentStatus: domain.RescheduleNotRequired,
		Extras: []domain.BookingExtra{
			{ExtraID: 5, Quantity: 2, PriceEach: 200, DurationMinutes: 30},
		},
	}

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
