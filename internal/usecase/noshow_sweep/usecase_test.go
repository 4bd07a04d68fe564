package noshow_sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// --- фейки зависимостей ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeBookingRepo struct {
	candidates []*domain.Booking
	markErr    map[int64]error
	marked     []int64
}

func (f *fakeBookingRepo) ListConfirmedUpTo(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.candidates, nil
}

func (f *fakeBookingRepo) MarkNoShow(_ context.Context, id int64) error {
	if err, ok := f.markErr[id]; ok {
		return err
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakePolicyRepo struct {
	policies map[int64]*domain.BookingPolicy
	active   *domain.BookingPolicy
	lookups  int
}

func (f *fakePolicyRepo) GetByID(_ context.Context, id int64) (*domain.BookingPolicy, error) {
	f.lookups++
	return f.policies[id], nil
}

func (f *fakePolicyRepo) GetActive(_ context.Context) (*domain.BookingPolicy, error) {
	return f.active, nil
}

// --- окружение теста ---

func sweepPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		ID:            1,
		PolicyType:    domain.PolicyLateFee,
		NoShowMinutes: 30,
	}
}

func confirmedAt(id int64, start types.TimeString) *domain.Booking {
	policyID := int64(1)
	return &domain.Booking{
		ID:              id,
		UserID:          42,
		AppointmentDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		PolicyID:        &policyID,
	}
}

func newSweep(bookings *fakeBookingRepo, policies *fakePolicyRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, policies, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

// --- тесты ---

func TestExecute_MarksOverdueOnly(t *testing.T) {
	// now = 10:31: визит 10:00 просрочен (грейс 30 мин), визит 10:15 ещё нет
	now := time.Date(2026, 9, 15, 10, 31, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{candidates: []*domain.Booking{
		confirmedAt(1, "10:00"),
		confirmedAt(2, "10:15"),
	}}
	policies := &fakePolicyRepo{policies: map[int64]*domain.BookingPolicy{1: sweepPolicy()}}

	result, err := newSweep(bookings, policies, now).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Marked)
	assert.Equal(t, []int64{1}, bookings.marked)
}

func TestExecute_CheckedInExempt(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 31, 0, 0, time.UTC)
	checkedIn := time.Date(2026, 9, 15, 10, 5, 0, 0, time.UTC)

	b := confirmedAt(1, "10:00")
	b.CheckedInAt = &checkedIn
	bookings := &fakeBookingRepo{candidates: []*domain.Booking{b}}
	policies := &fakePolicyRepo{policies: map[int64]*domain.BookingPolicy{1: sweepPolicy()}}

	result, err := newSweep(bookings, policies, now).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Marked)
	assert.Empty(t, bookings.marked)
}

func TestExecute_RaceWithCancellationTolerated(t *testing.T) {
	// Параллельная отмена обогнала разметку: условный UPDATE не прошёл
	now := time.Date(2026, 9, 15, 10, 31, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{
		candidates: []*domain.Booking{confirmedAt(1, "10:00"), confirmedAt(2, "09:00")},
		markErr:    map[int64]error{1: bookingRepo.ErrInvalidState},
	}
	policies := &fakePolicyRepo{policies: map[int64]*domain.BookingPolicy{1: sweepPolicy()}}

	result, err := newSweep(bookings, policies, now).Execute(context.Background())
	require.NoError(t, err)

	// Гонка не роняет прогон, второй кандидат размечен
	assert.Equal(t, 1, result.Marked)
	assert.Equal(t, []int64{2}, bookings.marked)
}

func TestExecute_PolicyCachedPerRun(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{candidates: []*domain.Booking{
		confirmedAt(1, "09:00"),
		confirmedAt(2, "09:30"),
		confirmedAt(3, "10:00"),
	}}
	policies := &fakePolicyRepo{policies: map[int64]*domain.BookingPolicy{1: sweepPolicy()}}

	result, err := newSweep(bookings, policies, now).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Marked)
	// Одна политика — один запрос на прогон
	assert.Equal(t, 1, policies.lookups)
}

func TestExecute_LegacyBookingUsesActivePolicy(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 31, 0, 0, time.UTC)
	b := confirmedAt(1, "10:00")
	b.PolicyID = nil
	bookings := &fakeBookingRepo{candidates: []*domain.Booking{b}}
	policies := &fakePolicyRepo{active: sweepPolicy()}

	result, err := newSweep(bookings, policies, now).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Marked)
	assert.Equal(t, 0, policies.lookups)
}

func TestExecute_EmptyRun(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 31, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{}
	policies := &fakePolicyRepo{}

	result, err := newSweep(bookings, policies, now).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Scanned)
	assert.Equal(t, 0, result.Marked)
}
