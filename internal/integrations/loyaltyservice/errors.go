package loyaltyservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден в программе лояльности
	ErrClientNotFound = errors.New("loyalty client not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("loyaltyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("loyaltyservice client: invalid response")
)
