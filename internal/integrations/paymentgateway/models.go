package paymentgateway

// CreateOrderRequest запрос на создание платёжного ордера
type CreateOrderRequest struct {
	BookingID int64   `json:"booking_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	// Purpose различает первичную оплату и доплату за перенос
	Purpose string `json:"purpose"`
}

// Order платёжный ордер, созданный шлюзом
type Order struct {
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	PaymentURL string  `json:"payment_url"`
}

// PaymentResult результат проверки платежа
type PaymentResult struct {
	OrderID string  `json:"order_id"`
	Status  string  `json:"status"` // created | paid | failed
	Amount  float64 `json:"amount"`
}

// Paid true, если платёж подтверждён шлюзом
func (r *PaymentResult) Paid() bool {
	return r.Status == "paid"
}

// ErrorResponse модель ошибки от платёжного шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
