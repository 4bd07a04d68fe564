package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrOrderMismatch возвращается, когда ордер не привязан к бронированию
	ErrOrderMismatch = errors.New("confirm_payment: order does not belong to booking")

	// ErrInvalidState возвращается, когда бронирование не ждёт оплаты
	ErrInvalidState = errors.New("confirm_payment: booking is not awaiting payment")

	// ErrSlotLost возвращается, когда удержанный для переноса слот потерян
	// к моменту оплаты; сбор возвращается, бронирование остаётся на старом слоте
	ErrSlotLost = errors.New("confirm_payment: reschedule slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
