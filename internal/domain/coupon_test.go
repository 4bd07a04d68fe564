package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCoupon() *Coupon {
	return &Coupon{
		ID:                1,
		Code:              "WELCOME10",
		DiscountType:      DiscountPercentage,
		DiscountValue:     10,
		MinAmount:         500,
		MaxDiscount:       300,
		UsageLimit:        100,
		UsageLimitPerUser: 1,
		UsedCount:         5,
		ValidFrom:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:           time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:          true,
	}
}

func TestCouponValidate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	c := validCoupon()
	assert.NoError(t, c.Validate(1000, 1, 0, now))

	// Ниже минимальной суммы
	assert.ErrorIs(t, c.Validate(400, 1, 0, now), ErrCouponNotApplicable)

	// Лимит на пользователя
	assert.ErrorIs(t, c.Validate(1000, 1, 1, now), ErrCouponNotApplicable)

	// Вне срока действия
	assert.ErrorIs(t, c.Validate(1000, 1, 0, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)), ErrCouponNotApplicable)

	// Глобальный лимит исчерпан
	capped := validCoupon()
	capped.UsedCount = capped.UsageLimit
	assert.ErrorIs(t, capped.Validate(1000, 1, 0, now), ErrCouponNotApplicable)

	// Ограничение по услугам
	scoped := validCoupon()
	scoped.ApplicableServiceIDs = []int64{7}
	assert.NoError(t, scoped.Validate(1000, 7, 0, now))
	assert.ErrorIs(t, scoped.Validate(1000, 1, 0, now), ErrCouponNotApplicable)

	// Неактивный купон
	inactive := validCoupon()
	inactive.IsActive = false
	assert.ErrorIs(t, inactive.Validate(1000, 1, 0, now), ErrCouponNotApplicable)
}

func TestCouponDiscount(t *testing.T) {
	c := validCoupon()

	// 10% от 1000
	assert.Equal(t, 100.0, c.Discount(1000))

	// Потолок percentage-купона
	assert.Equal(t, 300.0, c.Discount(10000))

	fixed := validCoupon()
	fixed.DiscountType = DiscountFixed
	fixed.DiscountValue = 250
	assert.Equal(t, 250.0, fixed.Discount(1000))

	// Фиксированная скидка не больше подытога
	assert.Equal(t, 100.0, fixed.Discount(100))
}
