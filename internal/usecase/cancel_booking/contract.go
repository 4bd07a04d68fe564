package cancel_booking

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason *string, fee, refund float64, actorID int64) error
}

// PolicyRepository интерфейс репозитория политик
type PolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingPolicy, error)
	GetActive(ctx context.Context) (*domain.BookingPolicy, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (int64, error)
}

// PaymentClient интерфейс клиента платёжного шлюза
type PaymentClient interface {
	CreateRefund(ctx context.Context, orderID string, amount float64) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	SendBestEffort(ctx context.Context, n notifyservice.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
