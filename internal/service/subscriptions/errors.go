package subscriptions

import "errors"

var (
	// ErrSubscriptionExists возвращается, когда у клиента уже есть активный абонемент
	ErrSubscriptionExists = errors.New("client already has an active subscription")

	// ErrSubscriptionNotFound возвращается, когда активный абонемент не найден
	ErrSubscriptionNotFound = errors.New("active subscription not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("subscriptions service: internal error")
)
