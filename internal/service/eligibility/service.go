package eligibility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	subscriptionRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
)

// Service сервис оценки прав актора на бронирование
// Вычисляет горизонт записи и субботние ограничения по роли и абонементу
type Service struct {
	subscriptionRepo SubscriptionRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса оценки прав
func NewService(subscriptionRepo SubscriptionRepository, logger Logger) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Evaluate вычисляет права актора на запись для указанной даты
// Дата трактуется как гражданская дата в таймзоне компании loc
// Возвращает *HorizonError, если дата дальше горизонта, и
// ErrSaturdayRestricted для субботы без персонала и абонемента
func (s *Service) Evaluate(ctx context.Context, actor domain.Actor, date time.Time, loc *time.Location) (*domain.Eligibility, error) {
	now := s.timeProvider.Now()
	today := civilMidnight(now.In(loc), loc)
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	elig := &domain.Eligibility{
		MaxHorizonDays:  domain.BaseHorizonDays,
		SaturdayAllowed: false,
	}

	// Персонал получает фиксированный расширенный горизонт и доступ к субботе,
	// абонемент на него не влияет
	if actor.IsStaff() {
		elig.MaxHorizonDays = domain.StaffHorizonDays
		elig.SaturdayAllowed = true
	}

	elig.Cutoff = today.AddDate(0, 0, elig.MaxHorizonDays)

	// Абонемент проверяем только для авторизованных клиентов
	if !actor.IsStaff() && actor.Role == domain.RoleClient && actor.ID != 0 {
		sub, err := s.activeSubscription(ctx, actor.ID, now)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			elig.HasActiveSubscription = true
			elig.SaturdayAllowed = true

			// Абонемент продлевает горизонт до своей даты окончания,
			// если она дальше базового среза
			subEnd := civilMidnight(sub.EndsAt.In(loc), loc)
			if subEnd.After(elig.Cutoff) {
				elig.Cutoff = subEnd
				elig.MaxHorizonDays = int(subEnd.Sub(today).Hours() / 24)
			}
		}
	}

	if target.After(elig.Cutoff) {
		s.logger.Warn("Evaluate: date %s beyond horizon for actor id=%d role=%s, cutoff=%s",
			target.Format(domain.DateFormat), actor.ID, actor.Role, elig.Cutoff.Format(domain.DateFormat))
		return nil, &HorizonError{Cutoff: elig.Cutoff}
	}

	if target.Weekday() == time.Saturday && !elig.SaturdayAllowed {
		s.logger.Warn("Evaluate: saturday %s restricted for actor id=%d role=%s",
			target.Format(domain.DateFormat), actor.ID, actor.Role)
		return nil, ErrSaturdayRestricted
	}

	return elig, nil
}

// activeSubscription возвращает действующий абонемент клиента или nil
// Истёкший абонемент лениво деактивируется тем же условным переходом,
// что использует фоновая зачистка
func (s *Service) activeSubscription(ctx context.Context, clientID int64, now time.Time) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.GetActiveByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, nil
		}
		s.logger.Error("activeSubscription: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: activeSubscription - repository error: %v", ErrInternal, err)
	}

	if sub.IsExpired(now) {
		deactivated, err := s.subscriptionRepo.Deactivate(ctx, sub.ID)
		if err != nil {
			s.logger.Error("activeSubscription: failed to deactivate expired subscription id=%d: %v", sub.ID, err)
			return nil, fmt.Errorf("%w: activeSubscription - deactivate error: %v", ErrInternal, err)
		}
		if deactivated {
			s.logger.Info("activeSubscription: lazily deactivated expired subscription id=%d for client=%d", sub.ID, clientID)
		}
		return nil, nil
	}

	return sub, nil
}

// civilMidnight обнуляет время до начала гражданского дня в loc
func civilMidnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
