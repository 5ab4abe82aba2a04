package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetTemplateDay(ctx context.Context, companyID, employeeID int64, weekday time.Weekday) ([]*domain.TemplateInterval, error)
	ReplaceTemplateDay(ctx context.Context, companyID, employeeID int64, weekday time.Weekday, intervals []*domain.TemplateInterval) error
	GetExceptions(ctx context.Context, companyID, employeeID int64, date time.Time) ([]*domain.ScheduleException, error)
	ListExceptionsFrom(ctx context.Context, companyID, employeeID int64, from time.Time) ([]*domain.ScheduleException, error)
	AddException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	RemoveException(ctx context.Context, companyID, employeeID int64, date time.Time, slotTime string, kind domain.ExceptionKind) error
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
	GetEmployee(ctx context.Context, companyID, employeeID int64) (*companyservice.Employee, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
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

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
