package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	companyClient "github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	"github.com/m04kA/SalonBookingService/internal/integrations/notifyservice"
	availModels "github.com/m04kA/SalonBookingService/internal/service/availability/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// UseCase use case создания записи
type UseCase struct {
	bookingRepo   BookingRepository
	availability  AvailabilityResolver
	companyClient CompanyServiceClient
	tokenStore    CancelTokenStore
	notifyClient  NotifyServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityResolver,
	companyClient CompanyServiceClient,
	tokenStore CancelTokenStore,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		availability:  availability,
		companyClient: companyClient,
		tokenStore:    tokenStore,
		notifyClient:  notifyClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания записи
// Проверка слота и вставка идут в сериализуемой транзакции; проигравший
// конкурентную гонку за слот получает ErrSlotUnavailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d/%s, company=%d, employee=%d, service=%d, date=%s, time=%s",
		req.Actor.ID, req.Actor.Role, req.CompanyID, req.EmployeeID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем компанию: таймзону и шаг сетки слотов
	company, err := uc.companyClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	loc := company.Location()

	// 4. Проверяем мастера
	employee, err := uc.companyClient.GetEmployee(ctx, req.CompanyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, companyClient.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateBooking: employee id=%d not found in company id=%d", req.EmployeeID, req.CompanyID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("CreateBooking: employee id=%d is not active", req.EmployeeID)
		return nil, ErrEmployeeInactive
	}

	// 5. Получаем услугу и проверяем, что мастер её оказывает
	service, err := uc.companyClient.GetService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, companyClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.ProvidedBy(req.EmployeeID) {
		uc.logger.Warn("CreateBooking: service id=%d is not provided by employee id=%d", req.ServiceID, req.EmployeeID)
		return nil, ErrServiceNotProvided
	}

	// 6. Дата не в прошлом; горизонт проверит eligibility внутри резолвера
	if err := validateDate(req.Date, now, loc); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	startAt := types.ToCivilInstant(req.Date, req.StartTime, loc)
	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	var result *domain.Booking

	// 7. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Разрешаем слоты тем же резолвером, что и читающий путь
		// Ошибки прав (горизонт, суббота) пробрасываются как есть
		availability, err := uc.availability.ResolveSlots(txCtx, &availModels.ResolveRequest{
			CompanyID:          req.CompanyID,
			EmployeeID:         req.EmployeeID,
			Date:               req.Date,
			Actor:              req.Actor,
			GranularityMinutes: company.Granularity(),
			Location:           loc,
		})
		if err != nil {
			return err
		}

		// 7.2. Запрошенный слот должен быть в итоговой выдаче
		if !containsSlot(availability.Slots, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s is not available for employee=%d on %s",
				req.StartTime, req.EmployeeID, req.Date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 7.3. Повторная проверка пересечений на момент записи
		// Extra-слоты её пропускают: для них действует только проверка
		// точного совпадения начала из резолвера
		if !containsSlot(availability.Extra, req.StartTime) {
			conflict, err := uc.bookingRepo.FindConflicting(txCtx, req.CompanyID, req.EmployeeID, startAt, endAt)
			if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
				return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
			}
			if conflict != nil {
				uc.logger.Warn("CreateBooking: conflicting booking id=%d found for slot %s", conflict.ID, req.StartTime)
				return ErrSlotUnavailable
			}
		}

		// 7.4. Создаем запись в статусе pending
		booking := &domain.Booking{
			CompanyID:       req.CompanyID,
			EmployeeID:      req.EmployeeID,
			ServiceID:       req.ServiceID,
			BookingDate:     types.CivilDate(startAt, loc),
			StartTime:       req.StartTime,
			StartAt:         startAt,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    servicePrice(service),
			Notes:           req.Notes,
		}
		if req.Actor.IsGuest() {
			booking.GuestName = req.GuestName
			booking.GuestPhone = req.GuestPhone
		} else {
			clientID := req.Actor.ID
			booking.ClientID = &clientID
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Уникальный индекс по слоту - последний рубеж гонки
				uc.logger.Warn("CreateBooking: lost race for slot %s, employee=%d", req.StartTime, req.EmployeeID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 8. Побочные эффекты после коммита: токен гостевой отмены и уведомление
	// Их сбои не откатывают созданную запись
	var cancelToken *string
	if result.IsGuest() {
		cancelToken = uc.issueCancelToken(ctx, result, now)
	}
	uc.notifyConfirmed(ctx, result)

	resp := buildResponse(result)
	resp.CancelToken = cancelToken
	return resp, nil
}

// issueCancelToken выпускает одноразовый токен гостевой отмены
// Токен живёт до начала слота минус окно отмены
func (uc *UseCase) issueCancelToken(ctx context.Context, booking *domain.Booking, now time.Time) *string {
	cutoff := booking.StartAt.Add(-domain.GuestCancelCutoffHours * time.Hour)
	ttl := cutoff.Sub(now)
	if ttl <= 0 {
		// Слот уже ближе окна отмены - токен не выдаётся
		return nil
	}

	token := uuid.NewString()
	if err := uc.tokenStore.Save(ctx, token, booking.ID, ttl); err != nil {
		uc.logger.Error("CreateBooking: failed to save cancel token for booking id=%d: %v", booking.ID, err)
		return nil
	}

	return &token
}

// notifyConfirmed отправляет уведомление о созданной записи
// Ошибки доставки только логируются
func (uc *UseCase) notifyConfirmed(ctx context.Context, booking *domain.Booking) {
	notification := &notifyservice.Notification{
		Kind:       notifyservice.KindBookingConfirmed,
		ClientID:   booking.ClientID,
		GuestPhone: booking.GuestPhone,
		Payload: map[string]string{
			"booking_id": strconv.FormatInt(booking.ID, 10),
			"date":       booking.BookingDate.Format(domain.DateFormat),
			"time":       booking.StartTime.String(),
			"service":    booking.ServiceName,
		},
	}
	if err := uc.notifyClient.Send(ctx, notification); err != nil {
		uc.logger.Warn("CreateBooking: failed to send confirmation for booking id=%d: %v", booking.ID, err)
	}
}

// buildResponse конвертирует запись домена в ответ
func buildResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		CompanyID:       b.CompanyID,
		EmployeeID:      b.EmployeeID,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		GuestName:       b.GuestName,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}
}

// servicePrice извлекает цену услуги; без цены - 0.0
func servicePrice(service *companyClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}

// containsSlot проверяет наличие времени в списке слотов
func containsSlot(slots []types.TimeString, t types.TimeString) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}
