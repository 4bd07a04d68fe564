package models

import (
	"errors"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetEmployeeBookingsRequest запрос на получение бронирований сотрудника на дату
type GetEmployeeBookingsRequest struct {
	EmployeeID int64     `json:"employeeId"`
	Date       time.Time `json:"date"`
}

// Response модели

// BookingExtraResponse строка дополнительной услуги в составе бронирования
type BookingExtraResponse struct {
	ExtraID         int64   `json:"extraId"`
	Quantity        int     `json:"quantity"`
	PriceEach       float64 `json:"priceEach"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	ServiceID     int64  `json:"serviceId"`
	PricingTierID *int64 `json:"pricingTierId,omitempty"`
	EmployeeID    *int64 `json:"employeeId,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`       // "10:00"
	DurationMinutes int    `json:"durationMinutes"`

	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`

	GenderPreference string                 `json:"genderPreference"`
	Extras           []BookingExtraResponse `json:"extras,omitempty"`

	RescheduleAttempts      int    `json:"rescheduleAttempts"`
	ReschedulePaymentStatus string `json:"reschedulePaymentStatus"`

	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"` // ISO 8601
	CancellationFee    *float64 `json:"cancellationFee,omitempty"`
	RefundAmount       *float64 `json:"refundAmount,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// InvoiceResponse ответ со снимком счёта
type InvoiceResponse struct {
	ID             int64     `json:"id"`
	Number         string    `json:"number"`
	BookingID      int64     `json:"bookingId"`
	Kind           string    `json:"kind"`
	BaseAmount     float64   `json:"baseAmount"`
	ExtrasAmount   float64   `json:"extrasAmount"`
	GenderFee      float64   `json:"genderFee"`
	CouponCode     *string   `json:"couponCode,omitempty"`
	DiscountAmount float64   `json:"discountAmount"`
	FeeAmount      float64   `json:"feeAmount"`
	TotalAmount    float64   `json:"totalAmount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Методы конвертации

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, ok := domain.ParseBookingStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                      b.ID,
		UserID:                  b.UserID,
		ServiceID:               b.ServiceID,
		PricingTierID:           b.PricingTierID,
		EmployeeID:              b.EmployeeID,
		AppointmentDate:         b.AppointmentDate.Format(domain.DateFormat),
		StartTime:               b.StartTime.String(),
		DurationMinutes:         b.DurationMinutes,
		TotalAmount:             b.TotalAmount,
		Status:                  string(b.Status),
		PaymentStatus:           string(b.PaymentStatus),
		GenderPreference:        string(b.GenderPreference),
		RescheduleAttempts:      b.RescheduleAttempts,
		ReschedulePaymentStatus: string(b.ReschedulePaymentStatus),
		CancellationReason:      b.CancellationReason,
		CancellationFee:         b.CancellationFee,
		RefundAmount:            b.RefundAmount,
		Notes:                   b.Notes,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}

	for _, e := range b.Extras {
		resp.Extras = append(resp.Extras, BookingExtraResponse{
			ExtraID:         e.ExtraID,
			Quantity:        e.Quantity,
			PriceEach:       e.PriceEach,
			DurationMinutes: e.DurationMinutes,
		})
	}

	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainInvoices конвертирует счета в DTO
func FromDomainInvoices(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, InvoiceResponse{
			ID:             inv.ID,
			Number:         inv.Number,
			BookingID:      inv.BookingID,
			Kind:           string(inv.Kind),
			BaseAmount:     inv.BaseAmount,
			ExtrasAmount:   inv.ExtrasAmount,
			GenderFee:      inv.GenderFee,
			CouponCode:     inv.CouponCode,
			DiscountAmount: inv.DiscountAmount,
			FeeAmount:      inv.FeeAmount,
			TotalAmount:    inv.TotalAmount,
			CreatedAt:      inv.CreatedAt,
		})
	}
	return out
}
