package add_exception

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// AddExceptionRequest HTTP request model
type AddExceptionRequest struct {
	Date     string `json:"date"`     // YYYY-MM-DD
	SlotTime string `json:"slotTime"` // HH:MM
	Kind     string `json:"kind"`     // block | extra
}

// ExceptionView HTTP response model
type ExceptionView struct {
	Date     string `json:"date"`
	SlotTime string `json:"slotTime"`
	Kind     string `json:"kind"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddExceptionRequest) ToServiceRequest(companyID, employeeID int64) (*models.AddExceptionRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.SlotTime)
	if err != nil {
		return nil, err
	}

	return &models.AddExceptionRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       date,
		SlotTime:   slotTime,
		Kind:       domain.ExceptionKind(r.Kind),
	}, nil
}

// FromServiceResponse конвертирует модель сервиса в HTTP-ответ
func FromServiceResponse(exc *models.ExceptionView) *ExceptionView {
	return &ExceptionView{
		Date:     exc.Date.Format(domain.DateFormat),
		SlotTime: exc.SlotTime.String(),
		Kind:     string(exc.Kind),
	}
}
