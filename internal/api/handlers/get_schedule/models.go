package get_schedule

import (
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
)

// IntervalView интервал в HTTP-ответе
type IntervalView struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// DayView шаблон одного дня недели
type DayView struct {
	Weekday   int            `json:"weekday"` // 0 - воскресенье
	Intervals []IntervalView `json:"intervals"`
}

// ExceptionItemView действующее исключение расписания в HTTP-ответе
type ExceptionItemView struct {
	Date     string `json:"date"` // YYYY-MM-DD
	SlotTime string `json:"slotTime"`
	Kind     string `json:"kind"`
}

// ScheduleView HTTP response model
type ScheduleView struct {
	CompanyID  int64               `json:"companyId"`
	EmployeeID int64               `json:"employeeId"`
	Days       []DayView           `json:"days"`
	Exceptions []ExceptionItemView `json:"exceptions"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP-ответ
func FromServiceResponse(resp *models.ScheduleResponse) *ScheduleView {
	days := make([]DayView, 0, len(resp.Days))
	for _, day := range resp.Days {
		intervals := make([]IntervalView, 0, len(day.Intervals))
		for _, in := range day.Intervals {
			intervals = append(intervals, IntervalView{
				OpenTime:  in.OpenTime.String(),
				CloseTime: in.CloseTime.String(),
			})
		}
		days = append(days, DayView{
			Weekday:   int(day.Weekday),
			Intervals: intervals,
		})
	}
	exceptions := make([]ExceptionItemView, 0, len(resp.Exceptions))
	for _, exc := range resp.Exceptions {
		exceptions = append(exceptions, ExceptionItemView{
			Date:     exc.Date.Format(domain.DateFormat),
			SlotTime: exc.SlotTime.String(),
			Kind:     string(exc.Kind),
		})
	}
	return &ScheduleView{
		CompanyID:  resp.CompanyID,
		EmployeeID: resp.EmployeeID,
		Days:       days,
		Exceptions: exceptions,
	}
}
