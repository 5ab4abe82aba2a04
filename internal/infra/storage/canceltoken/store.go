package canceltoken

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cancel_token:"

// Store хранилище гостевых токенов отмены в Redis
// Токен живёт до момента "начало слота минус окно отмены": после этого
// отмена по токену всё равно запрещена, так что ключ просто истекает.
// Redis вместо памяти процесса - токен должен находиться любым
// инстансом сервиса
type Store struct {
	redis *redis.Client
}

// NewStore создает новое хранилище токенов
func NewStore(client *redis.Client) *Store {
	return &Store{redis: client}
}

// Save сохраняет токен отмены для записи с временем жизни ttl
func (s *Store) Save(ctx context.Context, token string, bookingID int64, ttl time.Duration) error {
	if ttl <= 0 {
		// Слот уже ближе окна отмены - токен не нужен
		return nil
	}

	key := keyPrefix + token
	if err := s.redis.Set(ctx, key, bookingID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set token: %v", ErrStore, err)
	}

	return nil
}

// Consume атомарно читает и удаляет токен (одноразовое использование)
// Из двух конкурентных отмен по одному токену пройдёт ровно одна
func (s *Store) Consume(ctx context.Context, token string) (int64, error) {
	val, err := s.redis.GetDel(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Consume - getdel token: %v", ErrStore, err)
	}

	bookingID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: Consume - parse booking id: %v", ErrStore, err)
	}

	return bookingID, nil
}
