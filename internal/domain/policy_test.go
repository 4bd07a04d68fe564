package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lateFeePolicy() *BookingPolicy {
	return &BookingPolicy{
		ID:                          1,
		Name:                        "standard",
		PolicyType:                  PolicyLateFee,
		CancellationWindowHours:     24,
		LateCancellationWindowHours: 4,
		LateCancellationFee:         200,
		RescheduleWindowHours:       4,
		RescheduleFee:               0,
		MaxRescheduleAttempts:       3,
		NoShowMinutes:               30,
		AdminOverrideFullRefund:     true,
	}
}

func confirmedBooking(total float64) *Booking {
	return &Booking{
		ID:          1,
		TotalAmount: total,
		Status:      StatusConfirmed,
	}
}

func TestEvaluateCancellation_LateFee(t *testing.T) {
	p := lateFeePolicy()
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	// За 30 часов: вне окна отмены, без удержания
	decision, err := p.EvaluateCancellation(confirmedBooking(1500), appointment, appointment.Add(-30*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, decision.Fee)
	assert.Equal(t, 1500.0, decision.Refund)
	assert.False(t, decision.Late)

	// За 10 часов: внутри окна отмены, удержание 200
	decision, err = p.EvaluateCancellation(confirmedBooking(1500), appointment, appointment.Add(-10*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, 200.0, decision.Fee)
	assert.Equal(t, 1300.0, decision.Refund)
	assert.False(t, decision.Late)

	// За 2 часа: внутри позднего окна, то же удержание плюс флаг Late
	decision, err = p.EvaluateCancellation(confirmedBooking(1500), appointment, appointment.Add(-2*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, 200.0, decision.Fee)
	assert.Equal(t, 1300.0, decision.Refund)
	assert.True(t, decision.Late)
}

func TestEvaluateCancellation_FeeInsideCancellationWindow(t *testing.T) {
	// Окно отмены 24 часа, позднее окно 2 часа: отмена за 3 часа до визита
	// лежит между ними, комиссия всё равно удерживается
	p := &BookingPolicy{
		ID:                          2,
		PolicyType:                  PolicyLateFee,
		CancellationWindowHours:     24,
		LateCancellationWindowHours: 2,
		LateCancellationFee:         200,
	}
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	decision, err := p.EvaluateCancellation(confirmedBooking(1000), appointment, appointment.Add(-3*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, 200.0, decision.Fee)
	assert.Equal(t, 800.0, decision.Refund)
	assert.False(t, decision.Late)
}

func TestEvaluateCancellation_FeeCappedByTotal(t *testing.T) {
	p := lateFeePolicy()
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	// Комиссия не превышает сумму бронирования
	decision, err := p.EvaluateCancellation(confirmedBooking(150), appointment, appointment.Add(-time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, 150.0, decision.Fee)
	assert.Equal(t, 0.0, decision.Refund)
}

func TestEvaluateCancellation_PolicyTypes(t *testing.T) {
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := appointment.Add(-2 * time.Hour)

	full := lateFeePolicy()
	full.PolicyType = PolicyFullRefund
	decision, err := full.EvaluateCancellation(confirmedBooking(1000), appointment, now, false)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, decision.Refund)

	none := lateFeePolicy()
	none.PolicyType = PolicyNoRefund
	decision, err = none.EvaluateCancellation(confirmedBooking(1000), appointment, now, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, decision.Refund)
	assert.False(t, decision.CreditLedger)

	credit := lateFeePolicy()
	credit.PolicyType = PolicyCreditOnly
	decision, err = credit.EvaluateCancellation(confirmedBooking(1000), appointment, now, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, decision.Refund)
	assert.True(t, decision.CreditLedger)

	// Нераспознанный тип политики — ошибка конфигурации, не дефолт
	unknown := lateFeePolicy()
	unknown.PolicyType = PolicyType("flexible")
	_, err = unknown.EvaluateCancellation(confirmedBooking(1000), appointment, now, false)
	assert.ErrorIs(t, err, ErrUnknownPolicyType)
}

func TestPolicyTypeValid(t *testing.T) {
	assert.True(t, PolicyLateFee.Valid())
	assert.True(t, PolicyFullRefund.Valid())
	assert.False(t, PolicyType("flexible").Valid())
	assert.False(t, PolicyType("").Valid())
}

func TestEvaluateCancellation_AfterStartRejected(t *testing.T) {
	p := lateFeePolicy()
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	_, err := p.EvaluateCancellation(confirmedBooking(1000), appointment, appointment.Add(time.Minute), false)
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)

	// Административная отмена проходит и после начала
	decision, err := p.EvaluateCancellation(confirmedBooking(1000), appointment, appointment.Add(time.Minute), true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, decision.Fee)
	assert.Equal(t, 1000.0, decision.Refund)
}

func TestEvaluateCancellation_TerminalStatusRejected(t *testing.T) {
	p := lateFeePolicy()
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	b := confirmedBooking(1000)
	b.Status = StatusCancelled
	_, err := p.EvaluateCancellation(b, appointment, appointment.Add(-10*time.Hour), false)
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)

	// Статус проверяется и при административной отмене
	_, err = p.EvaluateCancellation(b, appointment, appointment.Add(-10*time.Hour), true)
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}

func TestEvaluateReschedule(t *testing.T) {
	p := lateFeePolicy()
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	b := confirmedBooking(1000)
	assert.NoError(t, p.EvaluateReschedule(b, appointment, appointment.Add(-10*time.Hour)))

	// Внутри окна переноса
	err := p.EvaluateReschedule(b, appointment, appointment.Add(-2*time.Hour))
	assert.ErrorIs(t, err, ErrRescheduleNotAllowed)

	// Лимит попыток исчерпан
	b.RescheduleAttempts = p.MaxRescheduleAttempts
	err = p.EvaluateReschedule(b, appointment, appointment.Add(-10*time.Hour))
	assert.ErrorIs(t, err, ErrRescheduleNotAllowed)
}

func TestIsNoShowDue(t *testing.T) {
	p := lateFeePolicy()
	appointment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	b := confirmedBooking(1000)
	assert.False(t, p.IsNoShowDue(b, appointment, appointment.Add(20*time.Minute)))
	assert.True(t, p.IsNoShowDue(b, appointment, appointment.Add(31*time.Minute)))

	// Отметившийся клиент не no-show
	checkedIn := appointment.Add(5 * time.Minute)
	b.CheckedInAt = &checkedIn
	assert.False(t, p.IsNoShowDue(b, appointment, appointment.Add(31*time.Minute)))

	// Только подтверждённые размечаются
	pending := confirmedBooking(1000)
	pending.Status = StatusPending
	assert.False(t, p.IsNoShowDue(pending, appointment, appointment.Add(31*time.Minute)))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusNoShow))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusNoShow, StatusCompleted))
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
}
