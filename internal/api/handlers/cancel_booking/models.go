package cancel_booking

import (
	cancelBooking "github.com/Sohelnm1/HCS-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
	// Force пропускает оконные проверки политики, доступно только администратору
	Force bool `json:"force,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, actorID int64, isAdmin bool) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		IsAdmin:   isAdmin,
		Force:     r.Force,
		Reason:    r.Reason,
	}
}
