package domain

import "time"

// InvoiceKind событие, породившее снимок счёта
type InvoiceKind string

const (
	InvoiceBooking      InvoiceKind = "booking"
	InvoiceReschedule   InvoiceKind = "reschedule"
	InvoiceCancellation InvoiceKind = "cancellation"
)

// Invoice неизменяемый снимок расчёта стоимости
// Создаётся при каждом событии, влияющем на цену, и никогда не
// пересчитывается задним числом из актуальных настроек
type Invoice struct {
	ID        int64
	Number    string // INV-<uuid>
	BookingID int64
	Kind      InvoiceKind

	BaseAmount     float64
	ExtrasAmount   float64
	GenderFee      float64
	CouponCode     *string
	DiscountAmount float64
	FeeAmount      float64
	TotalAmount    float64

	CreatedAt time.Time
}
