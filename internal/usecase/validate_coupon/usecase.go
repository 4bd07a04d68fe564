package validate_coupon

import (
	"context"
	"errors"
	"fmt"

	couponRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/coupon"
)

// Request модель запроса на проверку купона
type Request struct {
	UserID    int64   // ID пользователя
	Code      string  // Код купона
	ServiceID int64   // Услуга, к которой применяется купон
	Subtotal  float64 // Подытог заказа до скидки
}

// Response модель ответа: применимость и размер скидки
// Проверка справочная: счётчик использований не меняется, финальная
// валидация происходит при создании бронирования
type Response struct {
	Code           string  `json:"code"`
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalAfter     float64 `json:"totalAfter"`
}

// UseCase use case для предварительной проверки купона
type UseCase struct {
	couponRepo   CouponRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(couponRepo CouponRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		couponRepo:   couponRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку купона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Subtotal < 0 {
		return nil, fmt.Errorf("%w: subtotal must not be negative", ErrInvalidInput)
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Warn("ValidateCoupon: coupon %s not found", req.Code)
			return nil, ErrCouponInvalid
		}
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	usage, err := uc.bookingRepo.CountUserCouponUsage(ctx, coupon.ID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count usage: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if err := coupon.Validate(req.Subtotal, req.ServiceID, usage, now); err != nil {
		uc.logger.Info("ValidateCoupon: coupon %s rejected for user=%d: %v", req.Code, req.UserID, err)
		return nil, ErrCouponInvalid
	}

	discount := coupon.Discount(req.Subtotal)
	return &Response{
		Code:           coupon.Code,
		Valid:          true,
		DiscountAmount: discount,
		TotalAfter:     req.Subtotal - discount,
	}, nil
}
