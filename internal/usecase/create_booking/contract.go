package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	"github.com/m04kA/SalonBookingService/internal/integrations/notifyservice"
	availModels "github.com/m04kA/SalonBookingService/internal/service/availability/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindConflicting(ctx context.Context, companyID, employeeID int64, start, end time.Time) (*domain.Booking, error)
}

// AvailabilityResolver интерфейс резолвера доступных слотов
// Тот же резолвер обслуживает читающий путь - расхождения между выдачей
// слотов и проверкой при записи исключены
type AvailabilityResolver interface {
	ResolveSlots(ctx context.Context, req *availModels.ResolveRequest) (*availModels.AvailabilityResult, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
	GetEmployee(ctx context.Context, companyID, employeeID int64) (*companyservice.Employee, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*companyservice.Service, error)
}

// CancelTokenStore интерфейс хранилища гостевых токенов отмены
type CancelTokenStore interface {
	Save(ctx context.Context, token string, bookingID int64, ttl time.Duration) error
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	Send(ctx context.Context, notification *notifyservice.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
