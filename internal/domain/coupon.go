package domain

import (
	"errors"
	"time"
)

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ErrCouponNotApplicable возвращается, когда купон не проходит проверки применимости
var ErrCouponNotApplicable = errors.New("coupon is not applicable")

// Coupon скидочный купон
// Используется калькулятором цены как чистый вход; used_count
// инкрементируется только при успешном коммите бронирования
type Coupon struct {
	ID            int64
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	// MinAmount минимальная сумма заказа для применения
	MinAmount float64
	// MaxDiscount потолок скидки для percentage-купонов; 0 = без потолка
	MaxDiscount float64

	UsageLimit        int // 0 = без глобального лимита
	UsageLimitPerUser int // 0 = без лимита на пользователя
	UsedCount         int

	ValidFrom time.Time
	ValidTo   time.Time
	// ApplicableServiceIDs пустой список = применим ко всем услугам
	ApplicableServiceIDs []int64

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет применимость купона к заказу
// userUsage — сколько раз этот пользователь уже использовал купон
func (c *Coupon) Validate(subtotal float64, serviceID int64, userUsage int, now time.Time) error {
	if !c.IsActive {
		return ErrCouponNotApplicable
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return ErrCouponNotApplicable
	}
	if subtotal < c.MinAmount {
		return ErrCouponNotApplicable
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return ErrCouponNotApplicable
	}
	if c.UsageLimitPerUser > 0 && userUsage >= c.UsageLimitPerUser {
		return ErrCouponNotApplicable
	}

	if len(c.ApplicableServiceIDs) > 0 {
		found := false
		for _, id := range c.ApplicableServiceIDs {
			if id == serviceID {
				found = true
				break
			}
		}
		if !found {
			return ErrCouponNotApplicable
		}
	}

	return nil
}

// Discount считает размер скидки для подытога
// percentage: min(subtotal*value/100, max_discount); fixed: min(value, subtotal)
func (c *Coupon) Discount(subtotal float64) float64 {
	var discount float64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal * c.DiscountValue / 100
		if c.MaxDiscount > 0 && discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
	case DiscountFixed:
		discount = c.DiscountValue
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
