package pricing

import (
	"fmt"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/ptr"
)

// Чистый калькулятор стоимости. Все данные (купон, цены, сборы) передаются
// на вход; состояние не читается и не мутируется. Инкремент used_count купона
// выполняет вызывающая сторона при успешном коммите бронирования.

// Line позиция доп. услуги
type Line struct {
	PriceEach float64
	Quantity  int
}

// Input входные данные расчёта
type Input struct {
	ServiceID int64
	// BasePrice цена услуги или выбранного тарифа
	BasePrice float64
	Extras    []Line
	// GenderPreferenceFee доплата за предпочтение пола (0, если предпочтения нет)
	GenderPreferenceFee float64

	Coupon          *domain.Coupon
	CouponUserUsage int

	// RescheduleFee и CancellationFee добавляются при соответствующих событиях
	RescheduleFee   float64
	CancellationFee float64

	Now time.Time
}

// Breakdown результат расчёта — основа для снимка счёта
type Breakdown struct {
	BaseAmount     float64
	ExtrasAmount   float64
	GenderFee      float64
	CouponCode     *string
	DiscountAmount float64
	FeeAmount      float64
	TotalAmount    float64
}

// Calculate считает итоговую стоимость:
// base + Σ(extra × qty) + доплата за пол − скидка купона + сборы
func Calculate(in Input) (*Breakdown, error) {
	if in.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base price is negative", ErrInvalidInput)
	}

	var extrasAmount float64
	for i, line := range in.Extras {
		if line.PriceEach < 0 || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: extra line %d", ErrInvalidInput, i)
		}
		extrasAmount += line.PriceEach * float64(line.Quantity)
	}

	subtotal := in.BasePrice + extrasAmount + in.GenderPreferenceFee

	var discount float64
	var couponCode *string
	if in.Coupon != nil {
		if err := in.Coupon.Validate(subtotal, in.ServiceID, in.CouponUserUsage, in.Now); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCouponInvalid, in.Coupon.Code, err)
		}
		discount = in.Coupon.Discount(subtotal)
		couponCode = ptr.Ptr(in.Coupon.Code)
	}

	fees := in.RescheduleFee + in.CancellationFee
	total := subtotal - discount + fees
	if total < 0 {
		total = 0
	}

	return &Breakdown{
		BaseAmount:     in.BasePrice,
		ExtrasAmount:   extrasAmount,
		GenderFee:      in.GenderPreferenceFee,
		CouponCode:     couponCode,
		DiscountAmount: discount,
		FeeAmount:      fees,
		TotalAmount:    total,
	}, nil
}
