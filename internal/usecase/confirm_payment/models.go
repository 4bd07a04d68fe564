package confirm_payment

// Request модель запроса подтверждения оплаты (колбэк шлюза)
type Request struct {
	BookingID int64  // ID бронирования
	OrderID   string // ID платёжного ордера
}

// Response модель ответа с результатом обработки
type Response struct {
	BookingID               int64  `json:"bookingId"`
	Status                  string `json:"status"`
	PaymentStatus           string `json:"paymentStatus"`
	ReschedulePaymentStatus string `json:"reschedulePaymentStatus"`
}
