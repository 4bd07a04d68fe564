package identityservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в IdentityService
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")

	// ErrServiceDegraded возвращается при недоступности IdentityService.
	// Создание бронирования требует подтверждённого телефона, поэтому
	// деградация здесь блокирующая: вызывающая сторона возвращает 503.
	ErrServiceDegraded = errors.New("identityservice unavailable: graceful degradation applied")
)
