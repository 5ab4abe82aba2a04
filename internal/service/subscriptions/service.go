package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	subscriptionRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SalonBookingService/internal/service/subscriptions/models"
)

// Service сервис управления абонементами
type Service struct {
	subscriptionRepo SubscriptionRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса абонементов
func NewService(subscriptionRepo SubscriptionRepository, logger Logger) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Activate создает активный абонемент по событию подтверждённой оплаты
// У клиента может быть не более одного активного абонемента
func (s *Service) Activate(ctx context.Context, req *models.ActivateRequest) (*models.SubscriptionResponse, error) {
	s.logger.Info("Activate: activating subscription for client=%d, company=%d, period=%s..%s",
		req.ClientID, req.CompanyID,
		req.PeriodStart.Format(domain.DateFormat), req.PeriodEnd.Format(domain.DateFormat))

	if req.ClientID == 0 || req.CompanyID == 0 {
		return nil, fmt.Errorf("%w: client_id and company_id are required", ErrInvalidInput)
	}
	if !req.PeriodStart.Before(req.PeriodEnd) {
		return nil, fmt.Errorf("%w: period_start must be before period_end", ErrInvalidInput)
	}
	if req.TotalVisits <= 0 {
		return nil, fmt.Errorf("%w: total_visits must be positive", ErrInvalidInput)
	}

	// Инвариант "один активный абонемент" держится на уровне приложения:
	// перед созданием проверяем наличие действующего
	existing, err := s.subscriptionRepo.GetActiveByClient(ctx, req.ClientID)
	if err != nil && !errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
		s.logger.Error("Activate: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Activate - repository error: %v", ErrInternal, err)
	}
	if existing != nil {
		if !existing.IsExpired(s.timeProvider.Now()) {
			s.logger.Warn("Activate: client=%d already has active subscription id=%d", req.ClientID, existing.ID)
			return nil, ErrSubscriptionExists
		}
		// Истёкший абонемент деактивируем и продолжаем активацию нового
		if _, err := s.subscriptionRepo.Deactivate(ctx, existing.ID); err != nil {
			s.logger.Error("Activate: failed to deactivate expired subscription id=%d: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: Activate - deactivate error: %v", ErrInternal, err)
		}
		s.logger.Info("Activate: deactivated expired subscription id=%d for client=%d", existing.ID, req.ClientID)
	}

	sub, err := s.subscriptionRepo.Create(ctx, &domain.Subscription{
		CompanyID:   req.CompanyID,
		ClientID:    req.ClientID,
		Active:      true,
		StartsAt:    req.PeriodStart,
		EndsAt:      req.PeriodEnd,
		TotalVisits: req.TotalVisits,
	})
	if err != nil {
		s.logger.Error("Activate: failed to create subscription for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Activate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Activate: created subscription id=%d for client=%d", sub.ID, req.ClientID)
	return models.FromDomainSubscription(sub), nil
}

// GetActive возвращает действующий абонемент клиента
func (s *Service) GetActive(ctx context.Context, clientID int64) (*models.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.GetActiveByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		s.logger.Error("GetActive: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	if sub.IsExpired(s.timeProvider.Now()) {
		if _, err := s.subscriptionRepo.Deactivate(ctx, sub.ID); err != nil {
			s.logger.Error("GetActive: failed to deactivate expired subscription id=%d: %v", sub.ID, err)
			return nil, fmt.Errorf("%w: GetActive - deactivate error: %v", ErrInternal, err)
		}
		return nil, ErrSubscriptionNotFound
	}

	return models.FromDomainSubscription(sub), nil
}
