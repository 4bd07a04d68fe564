package pricing

import "errors"

var (
	// ErrCouponInvalid возвращается, когда купон не может быть применён:
	// неактивен, вне окна действия, исчерпаны лимиты, подытог меньше минимума
	// или услуга не входит в список применимых
	ErrCouponInvalid = errors.New("pricing: coupon invalid")

	// ErrInvalidInput возвращается при некорректных входных данных расчёта
	ErrInvalidInput = errors.New("pricing: invalid input")
)
