package canceltoken

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен не существует,
	// истёк по TTL или уже был использован
	ErrTokenNotFound = errors.New("canceltoken.store: token not found")

	// ErrStore возвращается при ошибках работы с Redis
	ErrStore = errors.New("canceltoken.store: redis error")
)
