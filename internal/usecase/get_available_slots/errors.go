package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("get_available_slots: service is inactive")

	// ErrTierNotFound возвращается, когда тариф не найден или принадлежит другой услуге
	ErrTierNotFound = errors.New("get_available_slots: pricing tier not found")

	// ErrExtraNotFound возвращается, когда доп. услуга не найдена
	ErrExtraNotFound = errors.New("get_available_slots: extra not found")

	// ErrDateNotBookable возвращается, когда дата вне окна бронирования
	ErrDateNotBookable = errors.New("get_available_slots: date is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
