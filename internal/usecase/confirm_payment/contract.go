package confirm_payment

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByEmployeesAndDate(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Booking, error)
	ConfirmPayment(ctx context.Context, id int64) error
	MarkPaymentFailed(ctx context.Context, id int64) error
	CompletePendingReschedule(ctx context.Context, id int64, total float64) error
	FailPendingReschedule(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleService интерфейс сервиса конфигураций расписания
type ScheduleService interface {
	GetConfigForService(ctx context.Context, service *domain.Service) (*domain.ScheduleConfig, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (int64, error)
}

// PaymentClient интерфейс клиента платёжного шлюза
type PaymentClient interface {
	VerifyPayment(ctx context.Context, orderID string) (*paymentgateway.PaymentResult, error)
	CreateRefund(ctx context.Context, orderID string, amount float64) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	SendBestEffort(ctx context.Context, n notifyservice.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
