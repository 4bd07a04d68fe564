package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrTierNotFound возвращается, когда тариф не найден
	ErrTierNotFound = errors.New("catalog.repository: pricing tier not found")

	// ErrExtraNotFound возвращается, когда одна из дополнительных услуг не найдена
	ErrExtraNotFound = errors.New("catalog.repository: extra not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
