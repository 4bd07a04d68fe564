package domain

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ReschedulePaymentStatus состояние оплаты переноса
// Отдельное поле, а не основной статус: при брошенной оплате переноса
// исходное бронирование должно остаться действительным
type ReschedulePaymentStatus string

const (
	RescheduleNotRequired ReschedulePaymentStatus = "not_required"
	ReschedulePending     ReschedulePaymentStatus = "pending"
	ReschedulePaid        ReschedulePaymentStatus = "paid"
	RescheduleFailed      ReschedulePaymentStatus = "failed"
)

// BookingExtra выбранная дополнительная услуга в составе бронирования
type BookingExtra struct {
	ExtraID         int64
	Quantity        int
	PriceEach       float64
	DurationMinutes int
}

// Booking represents a home-care appointment booking
type Booking struct {
	ID            int64
	UserID        int64
	ServiceID     int64
	PricingTierID *int64
	EmployeeID    *int64

	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int // фиксируется при создании и не пересчитывается

	TotalAmount   float64
	Status        BookingStatus
	PaymentStatus PaymentStatus

	GenderPreference GenderPreference
	PolicyID         *int64 // политика, действовавшая на момент создания
	CouponID         *int64
	Extras           []BookingExtra

	RescheduleAttempts      int
	ReschedulePaymentStatus ReschedulePaymentStatus
	// Целевой слот переноса, ожидающего оплаты
	PendingDate       *time.Time
	PendingStartTime  *types.TimeString
	PendingEmployeeID *int64

	CancellationReason *string
	CancelledAt        *time.Time
	CancelledBy        *int64
	CancellationFee    *float64
	RefundAmount       *float64

	PaymentOrderID *string
	CheckedInAt    *time.Time
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// BlocksSlot returns true if the booking still occupies its employee's time.
// Cancelled bookings release the slot; completed and no-show keep occupying
// their original interval.
func (b *Booking) BlocksSlot() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be rescheduled
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// AppointmentAt returns the exact appointment timestamp in the given location
func (b *Booking) AppointmentAt(loc *time.Location) (time.Time, error) {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	d := b.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}

// CanTransition проверяет допустимость перехода статуса
// Переходы монотонны: из терминальных статусов выхода нет
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled || to == StatusNoShow
	default:
		return false
	}
}

// ParseBookingStatus converts a string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// ParseReschedulePaymentStatus converts a string into a ReschedulePaymentStatus
func ParseReschedulePaymentStatus(s string) (ReschedulePaymentStatus, bool) {
	switch ReschedulePaymentStatus(s) {
	case RescheduleNotRequired, ReschedulePending, ReschedulePaid, RescheduleFailed:
		return ReschedulePaymentStatus(s), true
	default:
		return "", false
	}
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus
}

// EmployeeDayFilter фильтр для получения бронирований сотрудников на дату
type EmployeeDayFilter struct {
	EmployeeIDs []int64
	Date        time.Time
	// ForUpdate запрашивает блокировку строк (применяется только внутри транзакции)
	ForUpdate bool
}
