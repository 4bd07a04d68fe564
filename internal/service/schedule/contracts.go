package schedule

import (
	"context"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигураций расписания
type ConfigRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error)
	GetDefault(ctx context.Context) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, cfg *domain.ScheduleConfig) error
	GetOverrideByService(ctx context.Context, serviceID int64) (*domain.ScheduleOverride, error)
}

// ConfigCache интерфейс кеша конфигураций
type ConfigCache interface {
	Get(ctx context.Context, key string) (*domain.ScheduleConfig, bool)
	Set(ctx context.Context, key string, cfg *domain.ScheduleConfig)
	Invalidate(ctx context.Context, keys ...string)
	InvalidateServices(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
