package create_booking

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByEmployeesAndDate(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Booking, error)
	CountUserCouponUsage(ctx context.Context, couponID, userID int64) (int, error)
	SetPaymentOrder(ctx context.Context, id int64, orderID string) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetPricingTier(ctx context.Context, id int64) (*domain.PricingTier, error)
	GetExtras(ctx context.Context, ids []int64) ([]domain.Extra, error)
	GetEligibleEmployees(ctx context.Context, serviceID int64) ([]domain.Employee, error)
}

// PolicyRepository интерфейс репозитория политик
type PolicyRepository interface {
	GetActive(ctx context.Context) (*domain.BookingPolicy, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	IncrementUsage(ctx context.Context, id int64) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (int64, error)
}

// ScheduleService интерфейс сервиса конфигураций расписания
type ScheduleService interface {
	GetConfigForService(ctx context.Context, service *domain.Service) (*domain.ScheduleConfig, error)
}

// IdentityClient интерфейс клиента IdentityService
type IdentityClient interface {
	IsPhoneVerified(ctx context.Context, userID int64) (bool, error)
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
