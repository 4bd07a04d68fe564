package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64   // ID бронирования
	ActorID   int64   // Кто отменяет
	IsAdmin   bool    // Актор — администратор
	Force     bool    // Принудительная отмена администратором (пропуск оконных проверок)
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с результатом отмены
type Response struct {
	BookingID       int64   `json:"bookingId"`
	Status          string  `json:"status"`
	CancellationFee float64 `json:"cancellationFee"`
	RefundAmount    float64 `json:"refundAmount"`
	// CreditIssued true для credit_only политики: возврат нулевой,
	// кредит начисляет внешний леджер
	CreditIssued  bool   `json:"creditIssued"`
	InvoiceNumber string `json:"invoiceNumber"`
}
