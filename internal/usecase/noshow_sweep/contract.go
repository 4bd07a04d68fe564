package noshow_sweep

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedUpTo(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	MarkNoShow(ctx context.Context, id int64) error
}

// PolicyRepository интерфейс репозитория политик
type PolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingPolicy, error)
	GetActive(ctx context.Context) (*domain.BookingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
