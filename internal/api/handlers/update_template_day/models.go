package update_template_day

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// IntervalInput интервал в HTTP-запросе
type IntervalInput struct {
	OpenTime  string `json:"openTime"`  // HH:MM
	CloseTime string `json:"closeTime"` // HH:MM
}

// UpdateTemplateDayRequest HTTP request model
// Заменяет шаблон дня недели целиком
type UpdateTemplateDayRequest struct {
	Intervals []IntervalInput `json:"intervals"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateTemplateDayRequest) ToServiceRequest(companyID, employeeID int64, weekday time.Weekday) (*models.UpsertTemplateDayRequest, error) {
	intervals := make([]models.IntervalInput, 0, len(r.Intervals))
	for _, in := range r.Intervals {
		open, err := types.NewTimeStringFromString(in.OpenTime)
		if err != nil {
			return nil, err
		}
		close, err := types.NewTimeStringFromString(in.CloseTime)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, models.IntervalInput{OpenTime: open, CloseTime: close})
	}

	return &models.UpsertTemplateDayRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Weekday:    weekday,
		Intervals:  intervals,
	}, nil
}
