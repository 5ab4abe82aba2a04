package holidayfeed

import "errors"

var (
	// ErrYearNotFound возвращается, когда календарь за запрошенный год недоступен
	ErrYearNotFound = errors.New("holiday feed: year not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("holidayfeed client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("holidayfeed client: invalid response")
)
