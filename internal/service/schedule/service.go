package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/schedule"
	companyClient "github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
)

// Service сервис управления расписаниями мастеров
type Service struct {
	scheduleRepo  ScheduleRepository
	companyClient CompanyServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	companyClient CompanyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		companyClient: companyClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// UpsertTemplateDay заменяет шаблон дня недели целиком
// Интервалы должны быть непересекающимися, длина каждого кратна шагу
// сетки слотов компании
func (s *Service) UpsertTemplateDay(ctx context.Context, req *models.UpsertTemplateDayRequest) error {
	s.logger.Info("UpsertTemplateDay: company=%d, employee=%d, weekday=%d, intervals=%d",
		req.CompanyID, req.EmployeeID, req.Weekday, len(req.Intervals))

	company, err := s.checkEmployee(ctx, req.CompanyID, req.EmployeeID)
	if err != nil {
		return err
	}

	if err := validateIntervals(req.Intervals, company.Granularity()); err != nil {
		s.logger.Warn("UpsertTemplateDay: validation failed for employee=%d weekday=%d: %v",
			req.EmployeeID, req.Weekday, err)
		return err
	}

	intervals := make([]*domain.TemplateInterval, 0, len(req.Intervals))
	for _, in := range req.Intervals {
		intervals = append(intervals, &domain.TemplateInterval{
			CompanyID:  req.CompanyID,
			EmployeeID: req.EmployeeID,
			Weekday:    req.Weekday,
			OpenTime:   in.OpenTime,
			CloseTime:  in.CloseTime,
		})
	}

	// Замена дня - это delete+insert, оба шага в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceTemplateDay(ctx, req.CompanyID, req.EmployeeID, req.Weekday, intervals)
	})
	if err != nil {
		s.logger.Error("UpsertTemplateDay: failed to replace day for employee=%d weekday=%d: %v",
			req.EmployeeID, req.Weekday, err)
		return fmt.Errorf("%w: UpsertTemplateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertTemplateDay: successfully replaced weekday=%d for employee=%d", req.Weekday, req.EmployeeID)
	return nil
}

// AddException создает разовое исключение расписания
func (s *Service) AddException(ctx context.Context, req *models.AddExceptionRequest) (*models.ExceptionView, error) {
	s.logger.Info("AddException: company=%d, employee=%d, date=%s, slot=%s, kind=%s",
		req.CompanyID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.SlotTime, req.Kind)

	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}
	if err := req.SlotTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid slot time: %v", ErrInvalidInput, err)
	}

	if _, err := s.checkEmployee(ctx, req.CompanyID, req.EmployeeID); err != nil {
		return nil, err
	}

	exc, err := s.scheduleRepo.AddException(ctx, &domain.ScheduleException{
		CompanyID:  req.CompanyID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		SlotTime:   req.SlotTime,
		Kind:       req.Kind,
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateException) {
			s.logger.Warn("AddException: duplicate exception for employee=%d date=%s slot=%s kind=%s",
				req.EmployeeID, req.Date.Format(domain.DateFormat), req.SlotTime, req.Kind)
			return nil, ErrDuplicateException
		}
		s.logger.Error("AddException: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddException: created exception id=%d for employee=%d", exc.ID, req.EmployeeID)
	return &models.ExceptionView{Date: exc.Date, SlotTime: exc.SlotTime, Kind: exc.Kind}, nil
}

// RemoveException удаляет разовое исключение расписания
func (s *Service) RemoveException(ctx context.Context, req *models.RemoveExceptionRequest) error {
	s.logger.Info("RemoveException: company=%d, employee=%d, date=%s, slot=%s, kind=%s",
		req.CompanyID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.SlotTime, req.Kind)

	if !req.Kind.Valid() {
		return fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}

	err := s.scheduleRepo.RemoveException(ctx, req.CompanyID, req.EmployeeID, req.Date, req.SlotTime.String(), req.Kind)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("RemoveException: exception not found for employee=%d date=%s slot=%s kind=%s",
				req.EmployeeID, req.Date.Format(domain.DateFormat), req.SlotTime, req.Kind)
			return ErrExceptionNotFound
		}
		s.logger.Error("RemoveException: repository error: %v", err)
		return fmt.Errorf("%w: RemoveException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveException: removed exception for employee=%d date=%s slot=%s",
		req.EmployeeID, req.Date.Format(domain.DateFormat), req.SlotTime)
	return nil
}

// GetSchedule возвращает недельный шаблон мастера вместе с действующими
// исключениями: без них персонал не видит, что именно удалять
func (s *Service) GetSchedule(ctx context.Context, companyID, employeeID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: company=%d, employee=%d", companyID, employeeID)

	company, err := s.checkEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	days := make([]models.DayTemplate, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		intervals, err := s.scheduleRepo.GetTemplateDay(ctx, companyID, employeeID, weekday)
		if err != nil {
			s.logger.Error("GetSchedule: failed to get weekday=%d for employee=%d: %v", weekday, employeeID, err)
			return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
		}
		days = append(days, models.DayTemplate{
			Weekday:   weekday,
			Intervals: models.FromDomainIntervals(intervals),
		})
	}

	// Прошедшие исключения не интересны: берём с сегодняшнего дня
	// по гражданскому календарю компании
	now := s.timeProvider.Now().In(company.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exceptions, err := s.scheduleRepo.ListExceptionsFrom(ctx, companyID, employeeID, today)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list exceptions for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return &models.ScheduleResponse{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Days:       days,
		Exceptions: models.FromDomainExceptions(exceptions),
	}, nil
}

// checkEmployee проверяет существование компании и мастера
func (s *Service) checkEmployee(ctx context.Context, companyID, employeeID int64) (*companyClient.Company, error) {
	company, err := s.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			s.logger.Warn("checkEmployee: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("checkEmployee: failed to get company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: checkEmployee - failed to get company: %v", ErrInternal, err)
	}

	if _, err := s.companyClient.GetEmployee(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, companyClient.ErrEmployeeNotFound) {
			s.logger.Warn("checkEmployee: employee id=%d not found in company id=%d", employeeID, companyID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("checkEmployee: failed to get employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: checkEmployee - failed to get employee: %v", ErrInternal, err)
	}

	return company, nil
}

// validateIntervals проверяет интервалы дня: корректность границ,
// кратность шагу сетки и отсутствие пересечений
func validateIntervals(intervals []models.IntervalInput, granularityMinutes int) error {
	for _, in := range intervals {
		if err := in.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid open time %q", ErrInvalidInput, in.OpenTime)
		}
		if err := in.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid close time %q", ErrInvalidInput, in.CloseTime)
		}
		if !in.OpenTime.IsBefore(in.CloseTime) {
			return fmt.Errorf("%w: open %s must be before close %s", ErrInvalidInput, in.OpenTime, in.CloseTime)
		}

		length := in.CloseTime.Minutes() - in.OpenTime.Minutes()
		if length%granularityMinutes != 0 {
			return fmt.Errorf("%w: interval %s-%s (%d min, granularity %d)",
				ErrIntervalNotAligned, in.OpenTime, in.CloseTime, length, granularityMinutes)
		}
	}

	// Пересечения ищем на отсортированной копии
	sorted := make([]models.IntervalInput, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OpenTime.Minutes() < sorted[j].OpenTime.Minutes()
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].OpenTime.Minutes() < sorted[i-1].CloseTime.Minutes() {
			return fmt.Errorf("%w: %s-%s and %s-%s",
				ErrOverlappingIntervals,
				sorted[i-1].OpenTime, sorted[i-1].CloseTime,
				sorted[i].OpenTime, sorted[i].CloseTime)
		}
	}

	return nil
}
