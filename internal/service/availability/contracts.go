package availability

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetTemplateDay(ctx context.Context, companyID, employeeID int64, weekday time.Weekday) ([]*domain.TemplateInterval, error)
	GetExceptions(ctx context.Context, companyID, employeeID int64, date time.Time) ([]*domain.ScheduleException, error)
}

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	GetActiveByDate(ctx context.Context, date time.Time) (*domain.Holiday, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EligibilityEvaluator интерфейс сервиса оценки прав на запись
type EligibilityEvaluator interface {
	Evaluate(ctx context.Context, actor domain.Actor, date time.Time, loc *time.Location) (*domain.Eligibility, error)
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
