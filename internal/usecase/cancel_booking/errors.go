package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на отмену
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrCancellationNotAllowed возвращается, когда отмена запрещена
	// статусом бронирования или политикой
	ErrCancellationNotAllowed = errors.New("cancel_booking: cancellation is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
