package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	companyClient "github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	availModels "github.com/m04kA/SalonBookingService/internal/service/availability/models"
)

// UseCase use case получения доступных слотов мастера на дату
type UseCase struct {
	availability  AvailabilityResolver
	companyClient CompanyServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityResolver,
	companyClient CompanyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:  availability,
		companyClient: companyClient,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: actor=%d/%s, company=%d, employee=%d, date=%s",
		req.Actor.ID, req.Actor.Role, req.CompanyID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем компанию: таймзону и шаг сетки слотов
	company, err := uc.companyClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetAvailableSlots: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 3. Проверяем мастера
	if _, err := uc.companyClient.GetEmployee(ctx, req.CompanyID, req.EmployeeID); err != nil {
		if errors.Is(err, companyClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found in company id=%d", req.EmployeeID, req.CompanyID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Разрешаем слоты
	// Ошибки прав (горизонт, суббота) пробрасываются как есть
	result, err := uc.availability.ResolveSlots(ctx, &availModels.ResolveRequest{
		CompanyID:          req.CompanyID,
		EmployeeID:         req.EmployeeID,
		Date:               req.Date,
		Actor:              req.Actor,
		GranularityMinutes: company.Granularity(),
		Location:           company.Location(),
	})
	if err != nil {
		return nil, err
	}

	resp := &Response{
		CompanyID:  req.CompanyID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Slots:      result.Slots,
		Union:      result.Union,
		Blocked:    result.Blocked,
		Extra:      result.Extra,
	}
	if result.Eligibility != nil {
		resp.HorizonCutoff = result.Eligibility.Cutoff
	}
	if result.Holiday != nil {
		resp.Holiday = &HolidayInfo{
			Name:     result.Holiday.Name,
			Behavior: string(result.Holiday.Behavior),
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for employee=%d on %s",
		len(resp.Slots), req.EmployeeID, req.Date.Format(domain.DateFormat))

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
