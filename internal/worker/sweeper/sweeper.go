package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	subscriptionstore "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SalonBookingService/internal/integrations/loyaltyservice"
)

const (
	sweepBookingCompletion  = "booking_completion"
	sweepSubscriptionExpiry = "subscription_expiry"
	sweepHolidaySync        = "holiday_sync"
)

// Config настройки фоновых задач
type Config struct {
	Interval            time.Duration
	HolidaySyncInterval time.Duration
	CompletionBatchSize uint64
}

// Sweeper выполняет периодические фоновые проходы: завершение прошедших
// записей, деактивацию истёкших абонементов и синхронизацию праздничного
// календаря. Все обновления условные, поэтому проходы безопасны при
// конкурентной работе с обработчиками запросов
type Sweeper struct {
	cfg              Config
	bookingRepo      BookingRepository
	subscriptionRepo SubscriptionRepository
	holidayRepo      HolidayRepository
	loyaltyClient    LoyaltyServiceClient
	holidayFeed      HolidayFeedClient
	metrics          MetricsCollector
	timeProvider     TimeProvider
	logger           Logger

	stopChan        chan struct{}
	lastHolidaySync time.Time
}

func New(
	cfg Config,
	bookingRepo BookingRepository,
	subscriptionRepo SubscriptionRepository,
	holidayRepo HolidayRepository,
	loyaltyClient LoyaltyServiceClient,
	holidayFeed HolidayFeedClient,
	metrics MetricsCollector,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		cfg:              cfg,
		bookingRepo:      bookingRepo,
		subscriptionRepo: subscriptionRepo,
		holidayRepo:      holidayRepo,
		loyaltyClient:    loyaltyClient,
		holidayFeed:      holidayFeed,
		metrics:          metrics,
		timeProvider:     RealTimeProvider{},
		logger:           logger,
		stopChan:         make(chan struct{}),
	}
}

// Start запускает фоновый цикл
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Sweeper: starting, interval=%s", s.cfg.Interval)
	go s.run(ctx)
}

// Stop останавливает фоновый цикл
func (s *Sweeper) Stop() {
	s.logger.Info("Sweeper: stopping")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// Первый проход сразу при старте
	s.sweep(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Sweeper: stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Sweeper: context cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := s.timeProvider.Now()

	err := s.completeDueBookings(ctx, now)
	s.observe(sweepBookingCompletion, err)

	err = s.deactivateExpiredSubscriptions(ctx, now)
	s.observe(sweepSubscriptionExpiry, err)

	if s.holidayFeed != nil && now.Sub(s.lastHolidaySync) >= s.cfg.HolidaySyncInterval {
		err = s.syncHolidays(ctx, now)
		s.observe(sweepHolidaySync, err)
		if err == nil {
			s.lastHolidaySync = now
		}
	}
}

func (s *Sweeper) observe(sweep string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveSweepRun(sweep, err)
	}
}

// completeDueBookings переводит прошедшие записи в completed, ровно один раз
// начисляет баллы лояльности и списывает визит с активного абонемента клиента
func (s *Sweeper) completeDueBookings(ctx context.Context, now time.Time) error {
	bookings, err := s.bookingRepo.ListDueForCompletion(ctx, now, s.cfg.CompletionBatchSize)
	if err != nil {
		s.logger.Error("Sweeper: list due bookings failed: %v", err)
		return err
	}

	for _, booking := range bookings {
		moved, err := s.bookingRepo.TransitionStatus(ctx, booking.ID, booking.Status, domain.StatusCompleted)
		if err != nil {
			s.logger.Error("Sweeper: complete booking failed: booking_id=%d, error=%v", booking.ID, err)
			continue
		}
		if !moved {
			// Статус изменился конкурентно (например, запись отменили)
			continue
		}

		s.logger.Info("Sweeper: booking completed: booking_id=%d", booking.ID)

		if booking.ClientID == nil {
			continue
		}

		s.awardLoyaltyPoints(ctx, booking)
		s.consumeSubscriptionVisit(ctx, *booking.ClientID, booking.ID)
	}

	return nil
}

func (s *Sweeper) awardLoyaltyPoints(ctx context.Context, booking *domain.Booking) {
	claimed, err := s.bookingRepo.ClaimPointsAward(ctx, booking.ID)
	if err != nil {
		s.logger.Error("Sweeper: claim points award failed: booking_id=%d, error=%v", booking.ID, err)
		return
	}
	if !claimed {
		return
	}

	_, err = s.loyaltyClient.AddPoints(ctx, &loyaltyservice.AddPointsRequest{
		ClientID:  *booking.ClientID,
		CompanyID: booking.CompanyID,
		BookingID: booking.ID,
		Amount:    booking.ServicePrice,
	})
	if err != nil {
		// Флаг уже взведён, повторного начисления не будет; фиксируем потерю
		s.logger.Error("Sweeper: add loyalty points failed: booking_id=%d, client_id=%d, error=%v",
			booking.ID, *booking.ClientID, err)
		return
	}

	s.logger.Info("Sweeper: loyalty points awarded: booking_id=%d, client_id=%d",
		booking.ID, *booking.ClientID)
}

func (s *Sweeper) consumeSubscriptionVisit(ctx context.Context, clientID, bookingID int64) {
	sub, err := s.subscriptionRepo.GetActiveByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, subscriptionstore.ErrSubscriptionNotFound) {
			return
		}
		s.logger.Error("Sweeper: get subscription failed: client_id=%d, error=%v", clientID, err)
		return
	}

	updated, err := s.subscriptionRepo.IncrementUsedVisits(ctx, sub.ID)
	if err != nil {
		if errors.Is(err, subscriptionstore.ErrSubscriptionNotFound) {
			return
		}
		s.logger.Error("Sweeper: increment used visits failed: subscription_id=%d, error=%v", sub.ID, err)
		return
	}

	s.logger.Info("Sweeper: subscription visit consumed: subscription_id=%d, used=%d/%d, booking_id=%d",
		updated.ID, updated.UsedVisits, updated.TotalVisits, bookingID)

	if updated.IsExhausted() {
		if _, err := s.subscriptionRepo.Deactivate(ctx, updated.ID); err != nil {
			s.logger.Error("Sweeper: deactivate exhausted subscription failed: subscription_id=%d, error=%v",
				updated.ID, err)
			return
		}
		s.logger.Info("Sweeper: subscription exhausted and deactivated: subscription_id=%d", updated.ID)
	}
}

// deactivateExpiredSubscriptions гасит абонементы с истёкшим сроком
// Тот же условный Deactivate использует ленивый путь чтения, поэтому
// двойная деактивация безвредна
func (s *Sweeper) deactivateExpiredSubscriptions(ctx context.Context, now time.Time) error {
	subs, err := s.subscriptionRepo.ListExpired(ctx, now)
	if err != nil {
		s.logger.Error("Sweeper: list expired subscriptions failed: %v", err)
		return err
	}

	for _, sub := range subs {
		deactivated, err := s.subscriptionRepo.Deactivate(ctx, sub.ID)
		if err != nil {
			s.logger.Error("Sweeper: deactivate subscription failed: subscription_id=%d, error=%v", sub.ID, err)
			continue
		}
		if deactivated {
			s.logger.Info("Sweeper: expired subscription deactivated: subscription_id=%d, client_id=%d",
				sub.ID, sub.ClientID)
		}
	}

	return nil
}

// syncHolidays подтягивает праздники текущего и следующего года из внешнего
// календаря. Upsert не трогает флаг active существующих записей, поэтому
// ручные выключения праздников переживают синхронизацию
func (s *Sweeper) syncHolidays(ctx context.Context, now time.Time) error {
	var lastErr error
	for _, year := range []int{now.Year(), now.Year() + 1} {
		feed, err := s.holidayFeed.FetchYear(ctx, year)
		if err != nil {
			s.logger.Warn("Sweeper: fetch holiday feed failed: year=%d, error=%v", year, err)
			lastErr = err
			continue
		}

		synced := 0
		for _, fh := range feed.Holidays {
			date, err := time.Parse(domain.DateFormat, fh.Date)
			if err != nil {
				s.logger.Warn("Sweeper: skip holiday with bad date: date=%q, error=%v", fh.Date, err)
				continue
			}

			err = s.holidayRepo.Upsert(ctx, &domain.Holiday{
				Date:     date,
				Name:     fh.Name,
				Behavior: domain.HolidayBlockAll,
				Active:   true,
			})
			if err != nil {
				s.logger.Error("Sweeper: upsert holiday failed: date=%s, error=%v", fh.Date, err)
				lastErr = err
				continue
			}
			synced++
		}

		s.logger.Info("Sweeper: holiday sync done: year=%d, synced=%d", year, synced)
	}

	return lastErr
}
