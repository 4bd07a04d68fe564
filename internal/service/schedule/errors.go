package schedule

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("schedule config not found")

	// ErrInvalidConfig возвращается при нарушении инвариантов конфигурации
	ErrInvalidConfig = errors.New("invalid schedule config")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
