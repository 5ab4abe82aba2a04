package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	tokenStore "github.com/m04kA/SalonBookingService/internal/infra/storage/canceltoken"
	"github.com/m04kA/SalonBookingService/internal/integrations/notifyservice"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
)

// Service сервис для работы с существующими записями:
// просмотр, отмена персоналом/клиентом и гостевая отмена по токену
type Service struct {
	bookingRepo  BookingRepository
	tokenStore   CancelTokenStore
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	tokenStore CancelTokenStore,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		tokenStore:   tokenStore,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи; персоналу доступны все записи компании
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d/%s", id, actor.ID, actor.Role)

	booking, err := s.fetchBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d/%s to booking id=%d", actor.ID, actor.Role, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCompanyBookings получает записи компании с фильтрацией
// Доступно только персоналу
func (s *Service) GetCompanyBookings(ctx context.Context, actor domain.Actor, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCompanyBookings: company=%d, actor=%d/%s", req.CompanyID, actor.ID, actor.Role)

	if !actor.IsStaff() {
		s.logger.Warn("GetCompanyBookings: access denied for actor=%d/%s", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{
		CompanyID:       req.CompanyID,
		EmployeeID:      req.EmployeeID,
		From:            req.From,
		To:              req.To,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Status != nil {
		status, ok := models.ToDomainBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetCompanyBookings: invalid status=%s for company=%d", *req.Status, req.CompanyID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyBookings: fetched %d bookings for company=%d", len(bookings), req.CompanyID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запись от имени авторизованного актора
// Клиент может отменить только свою запись, персонал - любую запись компании
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d/%s", bookingID, req.Actor.ID, req.Actor.Role)

	if err := validateReason(req.CancellationReason); err != nil {
		s.logger.Warn("Cancel: invalid cancellation reason for booking id=%d: %v", bookingID, err)
		return err
	}

	booking, err := s.fetchBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkAccess(booking, req.Actor); err != nil {
		s.logger.Warn("Cancel: access denied for actor=%d/%s to booking id=%d", req.Actor.ID, req.Actor.Role, bookingID)
		return err
	}

	if err := s.cancelBooking(ctx, "Cancel", booking, req.CancellationReason); err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// CancelByToken отменяет гостевую запись по одноразовому токену
// Токен сгорает при первом использовании; ближе чем за окно отмены
// до начала слота отмена запрещена
func (s *Service) CancelByToken(ctx context.Context, req *models.CancelByTokenRequest) error {
	s.logger.Info("CancelByToken: cancelling booking by token")

	// Причина проверяется до списания токена, чтобы не сжечь его впустую
	if err := validateReason(req.CancellationReason); err != nil {
		s.logger.Warn("CancelByToken: invalid cancellation reason: %v", err)
		return err
	}

	bookingID, err := s.tokenStore.Consume(ctx, req.Token)
	if err != nil {
		if errors.Is(err, tokenStore.ErrTokenNotFound) {
			s.logger.Warn("CancelByToken: token not found or already used")
			return ErrTokenNotFound
		}
		s.logger.Error("CancelByToken: token store error: %v", err)
		return fmt.Errorf("%w: CancelByToken - token store error: %v", ErrInternal, err)
	}

	booking, err := s.fetchBooking(ctx, "CancelByToken", bookingID)
	if err != nil {
		return err
	}

	// Токен истекает в Redis сам, но срок проверяется и здесь:
	// хранилище может отдать токен на границе окна
	cutoff := booking.StartAt.Add(-domain.GuestCancelCutoffHours * time.Hour)
	if !s.timeProvider.Now().Before(cutoff) {
		s.logger.Warn("CancelByToken: too late to cancel booking id=%d, cutoff=%s", bookingID, cutoff)
		return ErrTooLate
	}

	if err := s.cancelBooking(ctx, "CancelByToken", booking, req.CancellationReason); err != nil {
		return err
	}

	s.logger.Info("CancelByToken: successfully cancelled booking id=%d", bookingID)
	return nil
}

// validateReason проверяет длину причины отмены
func validateReason(reason string) error {
	if len([]rune(reason)) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

// fetchBooking получает запись по ID с маппингом ошибок репозитория
func (s *Service) fetchBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// cancelBooking выполняет отмену и отправляет уведомления
func (s *Service) cancelBooking(ctx context.Context, op string, booking *domain.Booking, reason string) error {
	if !booking.CanBeCancelled() {
		s.logger.Warn("%s: booking id=%d cannot be cancelled, status=%s", op, booking.ID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			// Состояние сменилось между чтением и отменой
			s.logger.Warn("%s: booking id=%d state changed, cancel rejected", op, booking.ID)
			return ErrCannotCancel
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error cancelling booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.notifyCancelled(ctx, booking)
	return nil
}

// notifyCancelled отправляет уведомления об отмене и освобождении слота
// Ошибки доставки не влияют на результат отмены
func (s *Service) notifyCancelled(ctx context.Context, booking *domain.Booking) {
	payload := map[string]string{
		"booking_id": strconv.FormatInt(booking.ID, 10),
		"date":       booking.BookingDate.Format(domain.DateFormat),
		"time":       booking.StartTime.String(),
		"service":    booking.ServiceName,
	}

	cancelled := &notifyservice.Notification{
		Kind:       notifyservice.KindBookingCancelled,
		ClientID:   booking.ClientID,
		GuestPhone: booking.GuestPhone,
		Payload:    payload,
	}
	if err := s.notifyClient.Send(ctx, cancelled); err != nil {
		s.logger.Warn("notifyCancelled: failed to send cancellation notification for booking id=%d: %v", booking.ID, err)
	}

	freed := &notifyservice.Notification{
		Kind:    notifyservice.KindSlotFreed,
		Payload: payload,
	}
	if err := s.notifyClient.Send(ctx, freed); err != nil {
		s.logger.Warn("notifyCancelled: failed to send slot-freed notification for booking id=%d: %v", booking.ID, err)
	}
}

// checkAccess проверяет права актора на запись
func (s *Service) checkAccess(booking *domain.Booking, actor domain.Actor) error {
	if actor.IsStaff() {
		return nil
	}
	if booking.ClientID != nil && actor.Role == domain.RoleClient && *booking.ClientID == actor.ID {
		return nil
	}
	return ErrAccessDenied
}
