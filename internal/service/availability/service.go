package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	holidayRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/holiday"
	"github.com/m04kA/SalonBookingService/internal/service/availability/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Service единый резолвер доступных слотов
// Используется и читающим путём (выдача слотов клиенту), и пишущим
// (проверка слота при создании записи) - расхождение двух путей было бы
// скрытой ошибкой корректности
type Service struct {
	scheduleRepo ScheduleRepository
	holidayRepo  HolidayRepository
	bookingRepo  BookingRepository
	eligibility  EligibilityEvaluator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр резолвера слотов
func NewService(
	scheduleRepo ScheduleRepository,
	holidayRepo HolidayRepository,
	bookingRepo BookingRepository,
	eligibility EligibilityEvaluator,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		holidayRepo:  holidayRepo,
		bookingRepo:  bookingRepo,
		eligibility:  eligibility,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ResolveSlots вычисляет доступные слоты мастера на дату для актора
// Ошибки прав (горизонт, суббота) пробрасываются из сервиса eligibility
// без пересчёта слотов
func (s *Service) ResolveSlots(ctx context.Context, req *models.ResolveRequest) (*models.AvailabilityResult, error) {
	if req.Location == nil || req.GranularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: location and granularity are required", ErrInvalidInput)
	}

	loc := req.Location
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	s.logger.Info("ResolveSlots: company=%d, employee=%d, date=%s, actor=%d/%s",
		req.CompanyID, req.EmployeeID, date.Format(domain.DateFormat), req.Actor.ID, req.Actor.Role)

	// 1. Права актора: дата за горизонтом или запретная суббота
	// отсекаются до вычисления слотов
	elig, err := s.eligibility.Evaluate(ctx, req.Actor, date, loc)
	if err != nil {
		return nil, err
	}

	// 2. Недельный шаблон мастера, развёрнутый в сетку слотов
	templateSet, err := s.expandTemplate(ctx, req, date.Weekday())
	if err != nil {
		return nil, err
	}

	// 3. Разовые исключения на дату
	extraSet, blockSet, err := s.loadExceptions(ctx, req, date)
	if err != nil {
		return nil, err
	}

	// 4. Праздник на дату
	holiday, err := s.resolveHoliday(ctx, date)
	if err != nil {
		return nil, err
	}

	// 5. Кандидаты: праздник сужает набор, block вычитается всегда
	candidates := buildCandidates(templateSet, extraSet, blockSet, holiday, req.Actor)

	// 6. Существующие активные записи мастера на этот день
	bookings, err := s.loadDayBookings(ctx, req, date, loc)
	if err != nil {
		return nil, err
	}

	removeBookedSlots(candidates, extraSet, bookings)

	// 7. Для сегодняшней даты прошедшие слоты не предлагаются
	now := s.timeProvider.Now()
	if types.SameCivilDay(now, date, loc) {
		dropPastSlots(candidates, types.NewTimeString(now.In(loc)))
	}

	result := &models.AvailabilityResult{
		Slots:       sortedSlots(candidates),
		Union:       sortedSlots(union(templateSet, extraSet)),
		Blocked:     sortedSlots(blockSet),
		Extra:       sortedSlots(extraSet),
		Eligibility: elig,
	}
	if holiday != nil {
		result.Holiday = &models.HolidayInfo{
			Name:     holiday.Name,
			Behavior: holiday.Behavior,
		}
	}

	s.logger.Info("ResolveSlots: company=%d, employee=%d, date=%s - %d slots resolved",
		req.CompanyID, req.EmployeeID, date.Format(domain.DateFormat), len(result.Slots))

	return result, nil
}

// expandTemplate разворачивает шаблонные интервалы дня недели в набор слотов
func (s *Service) expandTemplate(ctx context.Context, req *models.ResolveRequest, weekday time.Weekday) (map[types.TimeString]struct{}, error) {
	intervals, err := s.scheduleRepo.GetTemplateDay(ctx, req.CompanyID, req.EmployeeID, weekday)
	if err != nil {
		s.logger.Error("ResolveSlots: failed to get template for employee=%d weekday=%d: %v",
			req.EmployeeID, weekday, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	set := make(map[types.TimeString]struct{})
	for _, interval := range intervals {
		slots, err := types.ExpandInterval(interval.OpenTime, interval.CloseTime, req.GranularityMinutes)
		if err != nil {
			s.logger.Error("ResolveSlots: failed to expand interval %s-%s: %v",
				interval.OpenTime, interval.CloseTime, err)
			return nil, fmt.Errorf("%w: failed to expand interval: %v", ErrInternal, err)
		}
		for _, slot := range slots {
			set[slot] = struct{}{}
		}
	}

	return set, nil
}

// loadExceptions загружает исключения даты и разбивает их на extra и block
func (s *Service) loadExceptions(ctx context.Context, req *models.ResolveRequest, date time.Time) (extra, block map[types.TimeString]struct{}, err error) {
	exceptions, err := s.scheduleRepo.GetExceptions(ctx, req.CompanyID, req.EmployeeID, date)
	if err != nil {
		s.logger.Error("ResolveSlots: failed to get exceptions for employee=%d date=%s: %v",
			req.EmployeeID, date.Format(domain.DateFormat), err)
		return nil, nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	extra = make(map[types.TimeString]struct{})
	block = make(map[types.TimeString]struct{})
	for _, exc := range exceptions {
		switch exc.Kind {
		case domain.ExceptionExtra:
			extra[exc.SlotTime] = struct{}{}
		case domain.ExceptionBlock:
			block[exc.SlotTime] = struct{}{}
		}
	}

	return extra, block, nil
}

// resolveHoliday возвращает активный праздник на дату или nil
func (s *Service) resolveHoliday(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	holiday, err := s.holidayRepo.GetActiveByDate(ctx, date)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			return nil, nil
		}
		s.logger.Error("ResolveSlots: failed to get holiday for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get holiday: %v", ErrInternal, err)
	}
	return holiday, nil
}

// loadDayBookings возвращает активные записи мастера за гражданский день
func (s *Service) loadDayBookings(ctx context.Context, req *models.ResolveRequest, date time.Time, loc *time.Location) ([]*domain.Booking, error) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		CompanyID:  req.CompanyID,
		EmployeeID: &req.EmployeeID,
		From:       &dayStart,
		To:         &dayEnd,
	})
	if err != nil {
		s.logger.Error("ResolveSlots: failed to get bookings for employee=%d date=%s: %v",
			req.EmployeeID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// buildCandidates собирает набор кандидатов с учётом праздника
// Block-исключение убирает слот из любого набора
func buildCandidates(
	template, extra, block map[types.TimeString]struct{},
	holiday *domain.Holiday,
	actor domain.Actor,
) map[types.TimeString]struct{} {
	candidates := make(map[types.TimeString]struct{})

	extraOnly := false
	if holiday != nil {
		switch holiday.Behavior {
		case domain.HolidayExceptionsOnly:
			// Только открытые extra-слоты, для всех ролей
			extraOnly = true
		case domain.HolidayBlockAll:
			// Клиентам - только extra; персонал видит полный шаблон
			// для планирования собственного дня
			extraOnly = !actor.IsStaff()
		}
	}

	if !extraOnly {
		for slot := range template {
			candidates[slot] = struct{}{}
		}
	}
	for slot := range extra {
		candidates[slot] = struct{}{}
	}
	for slot := range block {
		delete(candidates, slot)
	}

	return candidates
}

// removeBookedSlots убирает кандидатов, совпадающих с началом активной записи
//
// Для extra-слотов сохранена историческая проверка: слот исключается, только
// если минуты-с-полуночи UTC начала записи равны минутам слота.
// TODO(schedule): пересчитывать сравнение в таймзоне компании - текущая
// проверка верна лишь при нулевой минутной составляющей UTC-смещения
func removeBookedSlots(candidates, extra map[types.TimeString]struct{}, bookings []*domain.Booking) {
	for slot := range candidates {
		if _, isExtra := extra[slot]; isExtra {
			slotMinutes := slot.Minutes()
			for _, b := range bookings {
				if types.UTCMinuteOfDay(b.StartAt) == slotMinutes {
					delete(candidates, slot)
					break
				}
			}
			continue
		}

		for _, b := range bookings {
			if b.StartTime == slot {
				delete(candidates, slot)
				break
			}
		}
	}
}

// dropPastSlots убирает слоты, начинающиеся не позже текущего времени
func dropPastSlots(candidates map[types.TimeString]struct{}, current types.TimeString) {
	for slot := range candidates {
		if !current.IsBefore(slot) {
			delete(candidates, slot)
		}
	}
}

// union объединяет два набора слотов
func union(a, b map[types.TimeString]struct{}) map[types.TimeString]struct{} {
	result := make(map[types.TimeString]struct{}, len(a)+len(b))
	for slot := range a {
		result[slot] = struct{}{}
	}
	for slot := range b {
		result[slot] = struct{}{}
	}
	return result
}

// sortedSlots возвращает слоты набора в порядке возрастания времени
func sortedSlots(set map[types.TimeString]struct{}) []types.TimeString {
	slots := make([]types.TimeString, 0, len(set))
	for slot := range set {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Minutes() < slots[j].Minutes()
	})
	return slots
}
