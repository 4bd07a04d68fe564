package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// --- фейки зависимостей ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubTx struct{}

func (stubTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking     *domain.Booking
	dayBookings []*domain.Booking

	confirmErr    error
	confirmed     bool
	paymentFailed bool

	rescheduleCompleted bool
	rescheduleFailed    bool
	newTotal            float64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByEmployeesAndDate(_ context.Context, _ domain.EmployeeDayFilter) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeBookingRepo) ConfirmPayment(_ context.Context, _ int64) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = true
	return nil
}

func (f *fakeBookingRepo) MarkPaymentFailed(_ context.Context, _ int64) error {
	f.paymentFailed = true
	return nil
}

func (f *fakeBookingRepo) CompletePendingReschedule(_ context.Context, _ int64, total float64) error {
	f.rescheduleCompleted = true
	f.newTotal = total
	return nil
}

func (f *fakeBookingRepo) FailPendingReschedule(_ context.Context, _ int64) error {
	f.rescheduleFailed = true
	return nil
}

type fakeCatalogRepo struct{ service *domain.Service }

func (f *fakeCatalogRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, nil
}

type fakeScheduleService struct{ cfg *domain.ScheduleConfig }

func (f *fakeScheduleService) GetConfigForService(_ context.Context, _ *domain.Service) (*domain.ScheduleConfig, error) {
	return f.cfg, nil
}

type fakeInvoiceRepo struct{ invoices []*domain.Invoice }

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (int64, error) {
	f.invoices = append(f.invoices, inv)
	return int64(len(f.invoices)), nil
}

type fakePayments struct {
	result *paymentgateway.PaymentResult

	refundOrder  string
	refundAmount float64
	refunds      int
}

func (f *fakePayments) VerifyPayment(_ context.Context, _ string) (*paymentgateway.PaymentResult, error) {
	return f.result, nil
}

func (f *fakePayments) CreateRefund(_ context.Context, orderID string, amount float64) error {
	f.refundOrder = orderID
	f.refundAmount = amount
	f.refunds++
	return nil
}

type fakeNotifier struct{ events []string }

func (f *fakeNotifier) SendBestEffort(_ context.Context, n notifyservice.Notification) {
	f.events = append(f.events, n.Event)
}

// --- окружение теста ---

type env struct {
	bookings *fakeBookingRepo
	invoices *fakeInvoiceRepo
	payments *fakePayments
	notifier *fakeNotifier
	uc       *UseCase
}

func pendingBooking() *domain.Booking {
	orderID := "ord-1"
	return &domain.Booking{
		ID:                      10,
		UserID:                  42,
		ServiceID:               1,
		AppointmentDate:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:               types.TimeString("10:00"),
		DurationMinutes:         60,
		TotalAmount:             1500,
		Status:                  domain.StatusPending,
		PaymentStatus:           domain.PaymentPending,
		PaymentOrderID:          &orderID,
		ReschedulePaymentStatus: domain.RescheduleNotRequired,
	}
}

// Бронирование с удержанным переносом на 2026-09-16 11:00, сбор 150
func rescheduleBooking() *domain.Booking {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	b.PaymentStatus = domain.PaymentPaid
	b.ReschedulePaymentStatus = domain.ReschedulePending
	pendingDate := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	pendingStart := types.TimeString("11:00")
	pendingEmployee := int64(2)
	b.PendingDate = &pendingDate
	b.PendingStartTime = &pendingStart
	b.PendingEmployeeID = &pendingEmployee
	return b
}

func newEnv(booking *domain.Booking, status string) *env {
	e := &env{
		bookings: &fakeBookingRepo{booking: booking},
		invoices: &fakeInvoiceRepo{},
		payments: &fakePayments{result: &paymentgateway.PaymentResult{
			OrderID: "ord-1",
			Status:  status,
			Amount:  150,
		}},
		notifier: &fakeNotifier{},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 1, DurationMinutes: 60, Price: 1500, IsActive: true}}
	schedule := &fakeScheduleService{cfg: &domain.ScheduleConfig{
		StartTime:         types.TimeString("09:00"),
		EndTime:           types.TimeString("18:00"),
		WorkingDays:       []int{1, 2, 3, 4, 5, 6},
		BufferTimeMinutes: 10,
	}}
	e.uc = NewUseCase(e.bookings, catalog, e.invoices, schedule, e.payments, e.notifier, stubTx{}, nopLogger{})
	return e
}

func callbackRequest() *Request {
	return &Request{BookingID: 10, OrderID: "ord-1"}
}

// --- тесты ---

func TestExecute_InitialPaymentConfirms(t *testing.T) {
	e := newEnv(pendingBooking(), "paid")

	resp, err := e.uc.Execute(context.Background(), callbackRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.True(t, e.bookings.confirmed)
	assert.Equal(t, []string{"booking_confirmed"}, e.notifier.events)
}

func TestExecute_InitialPaymentFailed(t *testing.T) {
	e := newEnv(pendingBooking(), "failed")

	resp, err := e.uc.Execute(context.Background(), callbackRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentFailed), resp.PaymentStatus)
	assert.True(t, e.bookings.paymentFailed)
	assert.False(t, e.bookings.confirmed)
	assert.Empty(t, e.notifier.events)
}

func TestExecute_DuplicateCallbackIsIdempotent(t *testing.T) {
	// Повторная доставка: бронирование уже подтверждено
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	b.PaymentStatus = domain.PaymentPaid
	e := newEnv(b, "paid")
	e.bookings.confirmErr = bookingRepo.ErrInvalidState

	resp, err := e.uc.Execute(context.Background(), callbackRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	// Без повторного уведомления
	assert.Empty(t, e.notifier.events)
}

func TestExecute_OrderMismatch(t *testing.T) {
	e := newEnv(pendingBooking(), "paid")

	_, err := e.uc.Execute(context.Background(), &Request{BookingID: 10, OrderID: "ord-other"})
	assert.ErrorIs(t, err, ErrOrderMismatch)
	assert.False(t, e.bookings.confirmed)
}

func TestExecute_ReschedulePaymentCompletes(t *testing.T) {
	e := newEnv(rescheduleBooking(), "paid")

	resp, err := e.uc.Execute(context.Background(), callbackRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.ReschedulePaid), resp.ReschedulePaymentStatus)
	assert.True(t, e.bookings.rescheduleCompleted)
	assert.Equal(t, 1650.0, e.bookings.newTotal)

	// Снимок счёта на сбор за перенос
	require.Len(t, e.invoices.invoices, 1)
	assert.Equal(t, domain.InvoiceReschedule, e.invoices.invoices[0].Kind)
	assert.Equal(t, 150.0, e.invoices.invoices[0].FeeAmount)

	assert.Equal(t, []string{"booking_rescheduled"}, e.notifier.events)
}

func TestExecute_RescheduleSlotLostRefundsFee(t *testing.T) {
	// Целевой слот заняли между удержанием и оплатой
	e := newEnv(rescheduleBooking(), "paid")
	emp := int64(2)
	e.bookings.dayBookings = []*domain.Booking{{
		ID:              77,
		EmployeeID:      &emp,
		StartTime:       types.TimeString("11:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}

	_, err := e.uc.Execute(context.Background(), callbackRequest())
	assert.ErrorIs(t, err, ErrSlotLost)

	// Перенос отклонён, сбор возвращён, бронирование остаётся на старом слоте
	assert.True(t, e.bookings.rescheduleFailed)
	assert.False(t, e.bookings.rescheduleCompleted)
	assert.Equal(t, 1, e.payments.refunds)
	assert.Equal(t, "ord-1", e.payments.refundOrder)
	assert.Equal(t, 150.0, e.payments.refundAmount)
	assert.Empty(t, e.invoices.invoices)
}

func TestExecute_RescheduleFeePaymentFailed(t *testing.T) {
	e := newEnv(rescheduleBooking(), "failed")

	resp, err := e.uc.Execute(context.Background(), callbackRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.RescheduleFailed), resp.ReschedulePaymentStatus)
	assert.True(t, e.bookings.rescheduleFailed)
	assert.Equal(t, 0, e.payments.refunds)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(pendingBooking(), "paid")

	_, err := e.uc.Execute(context.Background(), &Request{BookingID: 0, OrderID: "ord-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.uc.Execute(context.Background(), &Request{BookingID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
