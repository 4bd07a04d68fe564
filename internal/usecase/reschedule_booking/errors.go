package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на перенос
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrRescheduleNotAllowed возвращается, когда перенос запрещён политикой:
	// исчерпаны попытки, визит слишком близко или статус терминальный
	ErrRescheduleNotAllowed = errors.New("reschedule_booking: reschedule is not allowed")

	// ErrReschedulePending возвращается, когда уже есть перенос, ожидающий оплаты
	ErrReschedulePending = errors.New("reschedule_booking: another reschedule is awaiting payment")

	// ErrDateNotBookable возвращается, когда новая дата вне окна бронирования
	ErrDateNotBookable = errors.New("reschedule_booking: date is not bookable")

	// ErrInvalidTimeSlot возвращается, когда новое время не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrNoEligibleStaff возвращается, когда под предпочтение по полу нет сотрудников
	ErrNoEligibleStaff = errors.New("reschedule_booking: no eligible staff")

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrPaymentGateway возвращается, когда не удалось создать ордер на доплату
	ErrPaymentGateway = errors.New("reschedule_booking: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
