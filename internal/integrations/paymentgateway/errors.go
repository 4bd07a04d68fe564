package paymentgateway

import "errors"

var (
	// ErrOrderNotFound возвращается, когда платёжный ордер не найден в шлюзе
	ErrOrderNotFound = errors.New("payment order not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
