package validate_coupon

import (
	"context"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountUserCouponUsage(ctx context.Context, couponID, userID int64) (int, error)
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
