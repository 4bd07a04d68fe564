package create_booking

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	createBooking "github.com/Sohelnm1/HCS-BookingService/internal/usecase/create_booking"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// ExtraSelectionPayload выбранная доп. услуга
type ExtraSelectionPayload struct {
	ExtraID  int64 `json:"extraId"`
	Quantity int   `json:"quantity"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID        int64                   `json:"serviceId"`
	PricingTierID    *int64                  `json:"pricingTierId,omitempty"`
	Extras           []ExtraSelectionPayload `json:"extras,omitempty"`
	Date             string                  `json:"date"`      // YYYY-MM-DD
	StartTime        string                  `json:"startTime"` // "10:00"
	GenderPreference string                  `json:"genderPreference,omitempty"`
	CouponCode       *string                 `json:"couponCode,omitempty"`
	Notes            *string                 `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	extras := make([]domain.ExtraSelection, 0, len(r.Extras))
	for _, e := range r.Extras {
		extras = append(extras, domain.ExtraSelection{
			ExtraID:  e.ExtraID,
			Quantity: e.Quantity,
		})
	}

	return &createBooking.Request{
		UserID:           userID,
		ServiceID:        r.ServiceID,
		PricingTierID:    r.PricingTierID,
		Extras:           extras,
		Date:             date,
		StartTime:        types.TimeString(r.StartTime),
		GenderPreference: r.GenderPreference,
		CouponCode:       r.CouponCode,
		Notes:            r.Notes,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	ServiceID       int64  `json:"serviceId"`
	EmployeeID      int64  `json:"employeeId"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`

	BaseAmount     float64 `json:"baseAmount"`
	ExtrasAmount   float64 `json:"extrasAmount"`
	GenderFee      float64 `json:"genderFee"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	InvoiceNumber  string  `json:"invoiceNumber"`

	PaymentOrderID *string `json:"paymentOrderId,omitempty"`
	PaymentURL     *string `json:"paymentUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ServiceID:       resp.ServiceID,
		EmployeeID:      resp.EmployeeID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		BaseAmount:      resp.BaseAmount,
		ExtrasAmount:    resp.ExtrasAmount,
		GenderFee:       resp.GenderFee,
		DiscountAmount:  resp.DiscountAmount,
		TotalAmount:     resp.TotalAmount,
		InvoiceNumber:   resp.InvoiceNumber,
		PaymentOrderID:  resp.PaymentOrderID,
		PaymentURL:      resp.PaymentURL,
		CreatedAt:       resp.CreatedAt,
	}
}
