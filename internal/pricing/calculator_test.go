package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

func septNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func percentCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:            1,
		Code:          "SAVE20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 20,
		MaxDiscount:   500,
		ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func TestCalculate_FullBreakdown(t *testing.T) {
	got, err := Calculate(Input{
		ServiceID: 1,
		BasePrice: 1000,
		Extras: []Line{
			{PriceEach: 200, Quantity: 2},
			{PriceEach: 150, Quantity: 1},
		},
		GenderPreferenceFee: 100,
		Coupon:              percentCoupon(),
		Now:                 septNow(),
	})
	require.NoError(t, err)

	// base 1000 + extras 550 + gender 100 = 1650; скидка 20% = 330
	assert.Equal(t, 1000.0, got.BaseAmount)
	assert.Equal(t, 550.0, got.ExtrasAmount)
	assert.Equal(t, 100.0, got.GenderFee)
	assert.Equal(t, 330.0, got.DiscountAmount)
	assert.Equal(t, 1320.0, got.TotalAmount)
	require.NotNil(t, got.CouponCode)
	assert.Equal(t, "SAVE20", *got.CouponCode)
}

func TestCalculate_NoCoupon(t *testing.T) {
	got, err := Calculate(Input{ServiceID: 1, BasePrice: 800, Now: septNow()})
	require.NoError(t, err)
	assert.Equal(t, 800.0, got.TotalAmount)
	assert.Nil(t, got.CouponCode)
	assert.Equal(t, 0.0, got.DiscountAmount)
}

func TestCalculate_CouponRejected(t *testing.T) {
	expired := percentCoupon()
	expired.ValidTo = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := Calculate(Input{
		ServiceID: 1,
		BasePrice: 1000,
		Coupon:    expired,
		Now:       septNow(),
	})
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCalculate_Fees(t *testing.T) {
	got, err := Calculate(Input{
		ServiceID:     1,
		BasePrice:     1000,
		RescheduleFee: 150,
		Now:           septNow(),
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.FeeAmount)
	assert.Equal(t, 1150.0, got.TotalAmount)
}

func TestCalculate_TotalNeverNegative(t *testing.T) {
	generous := percentCoupon()
	generous.DiscountType = domain.DiscountFixed
	generous.DiscountValue = 5000

	got, err := Calculate(Input{
		ServiceID: 1,
		BasePrice: 300,
		Coupon:    generous,
		Now:       septNow(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalAmount)
}

func TestCalculate_InvalidInput(t *testing.T) {
	_, err := Calculate(Input{ServiceID: 1, BasePrice: -10, Now: septNow()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Calculate(Input{
		ServiceID: 1,
		BasePrice: 100,
		Extras:    []Line{{PriceEach: 50, Quantity: 0}},
		Now:       septNow(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
