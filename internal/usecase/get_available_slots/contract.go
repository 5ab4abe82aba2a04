package get_available_slots

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	availModels "github.com/m04kA/SalonBookingService/internal/service/availability/models"
)

// AvailabilityResolver интерфейс резолвера доступных слотов
type AvailabilityResolver interface {
	ResolveSlots(ctx context.Context, req *availModels.ResolveRequest) (*availModels.AvailabilityResult, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
	GetEmployee(ctx context.Context, companyID, employeeID int64) (*companyservice.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
