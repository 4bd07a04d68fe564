package confirm_payment

import (
	confirmPayment "github.com/Sohelnm1/HCS-BookingService/internal/usecase/confirm_payment"
)

// PaymentCallbackRequest HTTP request model колбэка платежного шлюза.
// Статус из тела не используется: фактическое состояние ордера
// всегда перепроверяется запросом к шлюзу
type PaymentCallbackRequest struct {
	BookingID int64  `json:"bookingId"`
	OrderID   string `json:"orderId"`
	Status    string `json:"status,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *PaymentCallbackRequest) ToUseCaseRequest() *confirmPayment.Request {
	return &confirmPayment.Request{
		BookingID: r.BookingID,
		OrderID:   r.OrderID,
	}
}
