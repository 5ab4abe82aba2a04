package get_available_slots

import (
	uc "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// HolidayView праздник в HTTP-ответе
type HolidayView struct {
	Name     string `json:"name"`
	Behavior string `json:"behavior"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	CompanyID  int64  `json:"companyId"`
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`

	Slots   []types.TimeString `json:"slots"`
	Union   []types.TimeString `json:"allSlots"`
	Blocked []types.TimeString `json:"blockedSlots"`
	Extra   []types.TimeString `json:"extraSlots"`

	Holiday *HolidayView `json:"holiday,omitempty"`

	HorizonCutoff string `json:"horizonCutoff"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP-модель
func FromUseCaseResponse(resp *uc.Response, dateFormat string) *GetAvailableSlotsResponse {
	result := &GetAvailableSlotsResponse{
		CompanyID:     resp.CompanyID,
		EmployeeID:    resp.EmployeeID,
		Date:          resp.Date.Format(dateFormat),
		Slots:         resp.Slots,
		Union:         resp.Union,
		Blocked:       resp.Blocked,
		Extra:         resp.Extra,
		HorizonCutoff: resp.HorizonCutoff.Format(dateFormat),
	}
	if resp.Holiday != nil {
		result.Holiday = &HolidayView{
			Name:     resp.Holiday.Name,
			Behavior: resp.Holiday.Behavior,
		}
	}
	return result
}
