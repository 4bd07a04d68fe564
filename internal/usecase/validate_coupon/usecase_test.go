package validate_coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	couponRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/coupon"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeCouponRepo struct{ coupon *domain.Coupon }

func (f *fakeCouponRepo) GetByCode(_ context.Context, _ string) (*domain.Coupon, error) {
	if f.coupon == nil {
		return nil, couponRepo.ErrCouponNotFound
	}
	return f.coupon, nil
}

type fakeBookingRepo struct{ usage int }

func (f *fakeBookingRepo) CountUserCouponUsage(_ context.Context, _, _ int64) (int, error) {
	return f.usage, nil
}

func newValidator(coupon *domain.Coupon, usage int) *UseCase {
	uc := NewUseCase(&fakeCouponRepo{coupon: coupon}, &fakeBookingRepo{usage: usage}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func welcomeCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:                1,
		Code:              "WELCOME10",
		DiscountType:      domain.DiscountPercentage,
		DiscountValue:     10,
		MinAmount:         500,
		UsageLimitPerUser: 1,
		ValidFrom:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:           time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:          true,
	}
}

func TestExecute_ValidCoupon(t *testing.T) {
	uc := newValidator(welcomeCoupon(), 0)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, Code: "WELCOME10", ServiceID: 1, Subtotal: 1000})
	require.NoError(t, err)

	assert.True(t, resp.Valid)
	assert.Equal(t, "WELCOME10", resp.Code)
	assert.Equal(t, 100.0, resp.DiscountAmount)
	assert.Equal(t, 900.0, resp.TotalAfter)
}

func TestExecute_UnknownCode(t *testing.T) {
	uc := newValidator(nil, 0)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, Code: "NOPE", ServiceID: 1, Subtotal: 1000})
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestExecute_PerUserLimitCounts(t *testing.T) {
	// Пользователь уже использовал купон в живом бронировании
	uc := newValidator(welcomeCoupon(), 1)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, Code: "WELCOME10", ServiceID: 1, Subtotal: 1000})
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestExecute_BelowMinAmount(t *testing.T) {
	uc := newValidator(welcomeCoupon(), 0)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, Code: "WELCOME10", ServiceID: 1, Subtotal: 400})
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newValidator(welcomeCoupon(), 0)

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, Code: "WELCOME10", ServiceID: 1, Subtotal: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Subtotal: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
