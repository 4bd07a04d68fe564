package reschedule_booking

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByEmployeesAndDate(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Booking, error)
	ApplyReschedule(ctx context.Context, id int64, date time.Time, start types.TimeString, employeeID int64) error
	SetPendingReschedule(ctx context.Context, id int64, date time.Time, start types.TimeString, employeeID int64, orderID string) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetEligibleEmployees(ctx context.Context, serviceID int64) ([]domain.Employee, error)
}

// PolicyRepository интерфейс репозитория политик
type PolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingPolicy, error)
	GetActive(ctx context.Context) (*domain.BookingPolicy, error)
}

// ScheduleService интерфейс сервиса конфигураций расписания
type ScheduleService interface {
	GetConfigForService(ctx context.Context, service *domain.Service) (*domain.ScheduleConfig, error)
}

// PaymentClient интерфейс клиента платёжного шлюза
type PaymentClient interface {
	CreateOrder(ctx context.Context, request paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error)
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
