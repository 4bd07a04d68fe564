package get_employee_bookings

import (
	"context"

	"github.com/Sohelnm1/HCS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetEmployeeBookings(ctx context.Context, req *models.GetEmployeeBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
