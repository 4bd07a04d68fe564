package bookings

import (
	"context"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByEmployeesAndDate(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Booking, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Invoice, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
