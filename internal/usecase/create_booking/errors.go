package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrTierNotFound возвращается, когда тариф не найден
	ErrTierNotFound = errors.New("create_booking: pricing tier not found")

	// ErrExtraNotFound возвращается, когда доп. услуга не найдена
	ErrExtraNotFound = errors.New("create_booking: extra not found")

	// ErrPhoneNotVerified возвращается, когда телефон пользователя не подтверждён
	ErrPhoneNotVerified = errors.New("create_booking: phone is not verified")

	// ErrIdentityUnavailable возвращается, когда IdentityService недоступен
	ErrIdentityUnavailable = errors.New("create_booking: identity service unavailable")

	// ErrDateNotBookable возвращается, когда дата вне окна бронирования
	ErrDateNotBookable = errors.New("create_booking: date is not bookable")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrNoEligibleStaff возвращается, когда под предпочтение по полу нет сотрудников
	ErrNoEligibleStaff = errors.New("create_booking: no eligible staff")

	// ErrSlotNotAvailable возвращается, когда слот занят всеми подходящими сотрудниками
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrCouponInvalid возвращается, когда купон не найден или неприменим
	ErrCouponInvalid = errors.New("create_booking: coupon is invalid")

	// ErrPaymentGateway возвращается, когда не удалось создать платёжный ордер
	ErrPaymentGateway = errors.New("create_booking: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
