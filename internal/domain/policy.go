package domain

import (
	"errors"
	"time"
)

// PolicyType тип политики возврата при отмене
type PolicyType string

const (
	// PolicyFullRefund отмена всегда без удержания
	PolicyFullRefund PolicyType = "full_refund"
	// PolicyNoRefund возврат не производится
	PolicyNoRefund PolicyType = "no_refund"
	// PolicyCreditOnly деньги не возвращаются, начисляется кредит во внешнем леджере
	PolicyCreditOnly PolicyType = "credit_only"
	// PolicyLateFee удержание late_cancellation_fee внутри позднего окна
	PolicyLateFee PolicyType = "late_fee"
)

var (
	// ErrCancellationNotAllowed возвращается, когда отмена запрещена политикой
	ErrCancellationNotAllowed = errors.New("cancellation is not allowed")

	// ErrRescheduleNotAllowed возвращается, когда перенос запрещён политикой
	ErrRescheduleNotAllowed = errors.New("reschedule is not allowed")

	// ErrUnknownPolicyType возвращается для политики с нераспознанным типом:
	// молчаливый дефолт маскировал бы ошибку конфигурации
	ErrUnknownPolicyType = errors.New("unknown policy type")
)

// Valid проверяет, что тип политики входит в известный набор
func (t PolicyType) Valid() bool {
	switch t {
	case PolicyFullRefund, PolicyNoRefund, PolicyCreditOnly, PolicyLateFee:
		return true
	}
	return false
}

// BookingPolicy represents cancellation/reschedule rules. A booking references
// the policy in force at creation time: later edits never apply retroactively.
type BookingPolicy struct {
	ID   int64
	Name string

	PolicyType                  PolicyType
	CancellationWindowHours     int
	LateCancellationWindowHours int
	LateCancellationFee         float64

	RescheduleWindowHours int
	RescheduleFee         float64
	MaxRescheduleAttempts int

	NoShowMinutes int

	NotifyOnCancel     bool
	NotifyOnReschedule bool
	// AdminOverrideFullRefund при принудительной отмене администратором
	// комиссия обнуляется; иначе работает обычная формула
	AdminOverrideFullRefund bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CancellationDecision результат оценки отмены
type CancellationDecision struct {
	Fee    float64
	Refund float64
	Late   bool
	// CreditLedger true для credit_only: возврат нулевой, кредит начисляет внешний леджер
	CreditLedger bool
}

// HoursUntil возвращает количество часов до момента визита
func HoursUntil(appointmentAt, now time.Time) float64 {
	return appointmentAt.Sub(now).Hours()
}

// EvaluateCancellation проверяет допустимость отмены и считает комиссию/возврат.
// adminOverride пропускает оконные проверки (но не проверку статуса) —
// привилегированный путь, вызывающая сторона обязана логировать актора.
func (p *BookingPolicy) EvaluateCancellation(b *Booking, appointmentAt, now time.Time, adminOverride bool) (*CancellationDecision, error) {
	if !b.CanBeCancelled() {
		return nil, ErrCancellationNotAllowed
	}

	hoursLeft := HoursUntil(appointmentAt, now)
	if !adminOverride && hoursLeft < 0 {
		// Визит уже начался: только no-show или административная отмена
		return nil, ErrCancellationNotAllowed
	}

	// Бесплатная отмена только вне окна отмены; внутри окна удерживается
	// late_cancellation_fee. Позднее окно — внутренний ярус для флага Late
	insideWindow := hoursLeft < float64(p.CancellationWindowHours)
	late := hoursLeft < float64(p.LateCancellationWindowHours)

	var fee float64
	creditLedger := false

	switch p.PolicyType {
	case PolicyFullRefund:
		fee = 0
	case PolicyNoRefund:
		fee = b.TotalAmount
	case PolicyCreditOnly:
		fee = b.TotalAmount
		creditLedger = true
	case PolicyLateFee:
		if insideWindow {
			fee = p.LateCancellationFee
		}
	default:
		return nil, ErrUnknownPolicyType
	}

	if adminOverride && p.AdminOverrideFullRefund {
		fee = 0
		creditLedger = false
	}

	if fee > b.TotalAmount {
		fee = b.TotalAmount
	}

	return &CancellationDecision{
		Fee:          fee,
		Refund:       b.TotalAmount - fee,
		Late:         late,
		CreditLedger: creditLedger,
	}, nil
}

// EvaluateReschedule проверяет допустимость переноса:
// остались попытки, визит не в прошлом, до визита не меньше окна переноса
func (p *BookingPolicy) EvaluateReschedule(b *Booking, appointmentAt, now time.Time) error {
	if !b.CanBeRescheduled() {
		return ErrRescheduleNotAllowed
	}
	if b.RescheduleAttempts >= p.MaxRescheduleAttempts {
		return ErrRescheduleNotAllowed
	}

	hoursLeft := HoursUntil(appointmentAt, now)
	if hoursLeft < 0 {
		return ErrRescheduleNotAllowed
	}
	if hoursLeft < float64(p.RescheduleWindowHours) {
		return ErrRescheduleNotAllowed
	}

	return nil
}

// IsNoShowDue проверяет, что подтверждённое бронирование пора пометить no_show
func (p *BookingPolicy) IsNoShowDue(b *Booking, appointmentAt, now time.Time) bool {
	if b.Status != StatusConfirmed || b.CheckedInAt != nil {
		return false
	}
	return now.After(appointmentAt.Add(time.Duration(p.NoShowMinutes) * time.Minute))
}
