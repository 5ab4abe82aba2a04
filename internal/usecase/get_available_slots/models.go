package get_available_slots

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Actor      domain.Actor
	CompanyID  int64
	EmployeeID int64
	Date       time.Time // Гражданская дата (без времени)
}

// HolidayInfo праздник, повлиявший на выдачу
type HolidayInfo struct {
	Name     string
	Behavior string
}

// Response модель ответа со слотами на дату
// Помимо итогового списка отдаёт сырые наборы для отрисовки расписания
type Response struct {
	CompanyID  int64
	EmployeeID int64
	Date       time.Time

	Slots   []types.TimeString
	Union   []types.TimeString
	Blocked []types.TimeString
	Extra   []types.TimeString

	Holiday *HolidayInfo

	// HorizonCutoff последняя дата, доступная актору для записи
	HorizonCutoff time.Time
}
