package validate_coupon

import "errors"

var (
	// ErrCouponInvalid возвращается, когда купон не найден или неприменим
	ErrCouponInvalid = errors.New("validate_coupon: coupon is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_coupon: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_coupon: internal error")
)
