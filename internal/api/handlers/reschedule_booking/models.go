package reschedule_booking

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	rescheduleBooking "github.com/Sohelnm1/HCS-BookingService/internal/usecase/reschedule_booking"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate      string `json:"newDate"`      // YYYY-MM-DD
	NewStartTime string `json:"newStartTime"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, actorID int64, isAdmin bool) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		ActorID:      actorID,
		IsAdmin:      isAdmin,
		NewDate:      date,
		NewStartTime: types.TimeString(r.NewStartTime),
	}, nil
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	BookingID    int64  `json:"bookingId"`
	Status       string `json:"status"` // rescheduled | awaiting_payment
	NewDate      string `json:"newDate"`
	NewStartTime string `json:"newStartTime"`
	EmployeeID   int64  `json:"employeeId"`

	RescheduleFee      float64 `json:"rescheduleFee"`
	RescheduleAttempts int     `json:"rescheduleAttempts"`

	PaymentOrderID *string `json:"paymentOrderId,omitempty"`
	PaymentURL     *string `json:"paymentUrl,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		BookingID:          resp.BookingID,
		Status:             resp.Status,
		NewDate:            resp.NewDate.Format(domain.DateFormat),
		NewStartTime:       resp.NewStartTime.String(),
		EmployeeID:         resp.EmployeeID,
		RescheduleFee:      resp.RescheduleFee,
		RescheduleAttempts: resp.RescheduleAttempts,
		PaymentOrderID:     resp.PaymentOrderID,
		PaymentURL:         resp.PaymentURL,
	}
}
