package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	couponRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/coupon"
	identityClient "github.com/Sohelnm1/HCS-BookingService/internal/integrations/identityservice"
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

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeBookingRepo struct {
	dayBookings []*domain.Booking
	created     *domain.Booking
	orderID     string
	couponUsage int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	c := *b
	c.ID = 101
	f.created = &c
	return &c, nil
}

func (f *fakeBookingRepo) GetByEmployeesAndDate(_ context.Context, _ domain.EmployeeDayFilter) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeBookingRepo) CountUserCouponUsage(_ context.Context, _, _ int64) (int, error) {
	return f.couponUsage, nil
}

func (f *fakeBookingRepo) SetPaymentOrder(_ context.Context, _ int64, orderID string) error {
	f.orderID = orderID
	return nil
}

type fakeCatalogRepo struct {
	service   *domain.Service
	employees []domain.Employee
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, nil
}

func (f *fakeCatalogRepo) GetPricingTier(_ context.Context, _ int64) (*domain.PricingTier, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetExtras(_ context.Context, _ []int64) ([]domain.Extra, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetEligibleEmployees(_ context.Context, _ int64) ([]domain.Employee, error) {
	return f.employees, nil
}

type fakePolicyRepo struct{ policy *domain.BookingPolicy }

func (f *fakePolicyRepo) GetActive(_ context.Context) (*domain.BookingPolicy, error) {
	return f.policy, nil
}

type fakeCouponRepo struct {
	coupon     *domain.Coupon
	increments int
}

func (f *fakeCouponRepo) GetByCode(_ context.Context, _ string) (*domain.Coupon, error) {
	if f.coupon == nil {
		return nil, couponRepo.ErrCouponNotFound
	}
	return f.coupon, nil
}

func (f *fakeCouponRepo) IncrementUsage(_ context.Context, _ int64) error {
	f.increments++
	return nil
}

type fakeInvoiceRepo struct{ invoices []*domain.Invoice }

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (int64, error) {
	f.invoices = append(f.invoices, inv)
	return int64(len(f.invoices)), nil
}

type fakeScheduleService struct{ cfg *domain.ScheduleConfig }

func (f *fakeScheduleService) GetConfigForService(_ context.Context, _ *domain.Service) (*domain.ScheduleConfig, error) {
	return f.cfg, nil
}

type fakeIdentity struct {
	verified bool
	err      error
}

func (f *fakeIdentity) IsPhoneVerified(_ context.Context, _ int64) (bool, error) {
	return f.verified, f.err
}

type fakePayments struct {
	order  *paymentgateway.Order
	err    error
	orders []paymentgateway.CreateOrderRequest
}

func (f *fakePayments) CreateOrder(_ context.Context, req paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error) {
	f.orders = append(f.orders, req)
	return f.order, f.err
}

type fakeNotifier struct{ events []string }

func (f *fakeNotifier) SendBestEffort(_ context.Context, n notifyservice.Notification) {
	f.events = append(f.events, n.Event)
}

// --- окружение теста ---

type env struct {
	bookings *fakeBookingRepo
	catalog  *fakeCatalogRepo
	policy   *fakePolicyRepo
	coupons  *fakeCouponRepo
	invoices *fakeInvoiceRepo
	payments *fakePayments
	identity *fakeIdentity
	notifier *fakeNotifier
	uc       *UseCase
}

func newEnv() *env {
	e := &env{
		bookings: &fakeBookingRepo{},
		catalog: &fakeCatalogRepo{
			service: &domain.Service{
				ID:                  1,
				Name:                "Уход на дому",
				DurationMinutes:     60,
				Price:               1000,
				GenderPreferenceFee: 200,
				MaxExtras:           3,
				IsActive:            true,
			},
			employees: []domain.Employee{
				{ID: 1, Name: "Anna", Gender: domain.GenderFemale, IsActive: true},
				{ID: 2, Name: "Boris", Gender: domain.GenderMale, IsActive: true},
			},
		},
		policy: &fakePolicyRepo{policy: &domain.BookingPolicy{
			ID:                    7,
			PolicyType:            domain.PolicyLateFee,
			MaxRescheduleAttempts: 3,
		}},
		coupons:  &fakeCouponRepo{},
		invoices: &fakeInvoiceRepo{},
		payments: &fakePayments{order: &paymentgateway.Order{
			OrderID:    "ord-1",
			Status:     "created",
			PaymentURL: "https://pay.example/ord-1",
		}},
		identity: &fakeIdentity{verified: true},
		notifier: &fakeNotifier{},
	}

	schedule := &fakeScheduleService{cfg: &domain.ScheduleConfig{
		StartTime:         types.TimeString("09:00"),
		EndTime:           types.TimeString("18:00"),
		WorkingDays:       []int{1, 2, 3, 4, 5, 6},
		BreakTimes:        []domain.BreakWindow{{Start: "13:00", End: "14:00"}},
		BufferTimeMinutes: 10,
		MinAdvanceHours:   2,
		MaxAdvanceDays:    30,
	}}

	e.uc = NewUseCase(
		e.bookings, e.catalog, e.policy, e.coupons, e.invoices,
		schedule, e.identity, e.payments, e.notifier, stubTx{}, nopLogger{},
	)
	e.uc.timeProvider = fixedTime{t: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)}
	return e
}

func validRequest() *Request {
	return &Request{
		UserID:    42,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 1000.0, resp.TotalAmount)
	assert.Equal(t, 0.0, resp.GenderFee)

	// Политика зафиксирована в бронировании
	require.NotNil(t, e.bookings.created.PolicyID)
	assert.Equal(t, int64(7), *e.bookings.created.PolicyID)

	// Снимок счёта за бронирование
	require.Len(t, e.invoices.invoices, 1)
	assert.Equal(t, domain.InvoiceBooking, e.invoices.invoices[0].Kind)
	assert.Equal(t, 1000.0, e.invoices.invoices[0].TotalAmount)

	// Платёжный ордер создан и привязан после коммита
	require.Len(t, e.payments.orders, 1)
	assert.Equal(t, "booking", e.payments.orders[0].Purpose)
	assert.Equal(t, "ord-1", e.bookings.orderID)
	require.NotNil(t, resp.PaymentOrderID)
	assert.Equal(t, "ord-1", *resp.PaymentOrderID)

	assert.Equal(t, []string{"booking_created"}, e.notifier.events)
}

func TestExecute_GenderPreferenceSurcharge(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.GenderPreference = "female"

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 200.0, resp.GenderFee)
	assert.Equal(t, 1200.0, resp.TotalAmount)

	// Назначена именно сотрудница
	require.NotNil(t, e.bookings.created.EmployeeID)
	assert.Equal(t, int64(1), *e.bookings.created.EmployeeID)
}

func TestExecute_SlotTakenByAllEligible(t *testing.T) {
	e := newEnv()
	emp1, emp2 := int64(1), int64(2)
	e.bookings.dayBookings = []*domain.Booking{
		{ID: 1, EmployeeID: &emp1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, EmployeeID: &emp2, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, e.bookings.created)
	assert.Empty(t, e.payments.orders)
}

func TestExecute_TimeOffGrid(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.StartTime = types.TimeString("10:05")

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_NoEligibleStaff(t *testing.T) {
	e := newEnv()
	e.catalog.employees = []domain.Employee{
		{ID: 2, Name: "Boris", Gender: domain.GenderMale, IsActive: true},
	}
	req := validRequest()
	req.GenderPreference = "female"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoEligibleStaff)
}

func TestExecute_PhoneNotVerified(t *testing.T) {
	e := newEnv()
	e.identity.verified = false

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPhoneNotVerified)
}

func TestExecute_IdentityDegradedBlocks(t *testing.T) {
	e := newEnv()
	e.identity.err = identityClient.ErrServiceDegraded

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
	assert.Nil(t, e.bookings.created)
}

func TestExecute_CouponAppliedAndCounted(t *testing.T) {
	e := newEnv()
	e.coupons.coupon = &domain.Coupon{
		ID:            3,
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
	code := "SAVE10"
	req := validRequest()
	req.CouponCode = &code

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 100.0, resp.DiscountAmount)
	assert.Equal(t, 900.0, resp.TotalAmount)
	assert.Equal(t, 1, e.coupons.increments)
	require.NotNil(t, e.bookings.created.CouponID)
	assert.Equal(t, int64(3), *e.bookings.created.CouponID)
}

func TestExecute_UnknownCouponRejected(t *testing.T) {
	e := newEnv()
	code := "NOPE"
	req := validRequest()
	req.CouponCode = &code

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestExecute_InactiveService(t *testing.T) {
	e := newEnv()
	e.catalog.service.IsActive = false

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_ValidationErrors(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.UserID = 0
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.GenderPreference = "robot"
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
