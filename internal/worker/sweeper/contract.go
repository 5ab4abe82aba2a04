package sweeper

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/integrations/holidayfeed"
	"github.com/m04kA/SalonBookingService/internal/integrations/loyaltyservice"
)

type BookingRepository interface {
	ListDueForCompletion(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, fromStatus, toStatus domain.BookingStatus) (bool, error)
	ClaimPointsAward(ctx context.Context, id int64) (bool, error)
}

type SubscriptionRepository interface {
	GetActiveByClient(ctx context.Context, clientID int64) (*domain.Subscription, error)
	IncrementUsedVisits(ctx context.Context, id int64) (*domain.Subscription, error)
	ListExpired(ctx context.Context, now time.Time) ([]*domain.Subscription, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
}

type HolidayRepository interface {
	Upsert(ctx context.Context, holiday *domain.Holiday) error
}

type LoyaltyServiceClient interface {
	AddPoints(ctx context.Context, request *loyaltyservice.AddPointsRequest) (*loyaltyservice.AddPointsResponse, error)
}

type HolidayFeedClient interface {
	FetchYear(ctx context.Context, year int) (*holidayfeed.FeedResponse, error)
}

// MetricsCollector счётчики фоновых проходов; может быть nil,
// если метрики выключены в конфигурации
type MetricsCollector interface {
	ObserveSweepRun(sweep string, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider возвращает реальное текущее время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
