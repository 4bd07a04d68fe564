package get_available_slots

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetPricingTier(ctx context.Context, id int64) (*domain.PricingTier, error)
	GetExtras(ctx context.Context, ids []int64) ([]domain.Extra, error)
	GetEligibleEmployees(ctx context.Context, serviceID int64) ([]domain.Employee, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByEmployeesAndDate(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Booking, error)
}

// ScheduleService интерфейс сервиса конфигураций расписания
type ScheduleService interface {
	GetConfigForService(ctx context.Context, service *domain.Service) (*domain.ScheduleConfig, error)
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
