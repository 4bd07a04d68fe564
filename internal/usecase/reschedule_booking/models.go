package reschedule_booking

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID    int64            // ID бронирования
	ActorID      int64            // Кто переносит
	IsAdmin      bool             // Актор — администратор
	NewDate      time.Time        // Новая дата визита
	NewStartTime types.TimeString // Новое время начала ("10:00")
}

// Статусы результата переноса
const (
	StatusRescheduled     = "rescheduled"      // перенос применён сразу
	StatusAwaitingPayment = "awaiting_payment" // слот удержан, ожидается оплата сбора
)

// Response модель ответа с результатом переноса
type Response struct {
	BookingID    int64            `json:"bookingId"`
	Status       string           `json:"status"` // rescheduled | awaiting_payment
	NewDate      time.Time        `json:"newDate"`
	NewStartTime types.TimeString `json:"newStartTime"`
	EmployeeID   int64            `json:"employeeId"`

	RescheduleFee      float64 `json:"rescheduleFee"`
	RescheduleAttempts int     `json:"rescheduleAttempts"`

	PaymentOrderID *string `json:"paymentOrderId,omitempty"`
	PaymentURL     *string `json:"paymentUrl,omitempty"`
}
