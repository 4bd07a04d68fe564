package invoice

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счёт не найден
	ErrInvoiceNotFound = errors.New("invoice.repository: invoice not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("invoice.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("invoice.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("invoice.repository: failed to scan row")
)
