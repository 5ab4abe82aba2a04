package eligibility

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetActiveByClient(ctx context.Context, clientID int64) (*domain.Subscription, error)
	// Deactivate условный перевод active -> inactive; возвращает false,
	// если абонемент уже был деактивирован другим вызовом
	Deactivate(ctx context.Context, id int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
