package get_booking_invoices

import (
	"context"

	"github.com/Sohelnm1/HCS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetInvoices(ctx context.Context, bookingID, userID int64, isAdmin bool) ([]models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
