package domain

import (
	"time"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// TemplateInterval один открытый интервал недельного шаблона мастера
// Интервалы одного дня недели не пересекаются; длина интервала кратна
// шагу сетки слотов компании
type TemplateInterval struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64
	Weekday    time.Weekday
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExceptionKind тип разового изменения расписания
type ExceptionKind string

const (
	// ExceptionBlock убирает слот, который шаблон сгенерировал бы
	ExceptionBlock ExceptionKind = "block"

	// ExceptionExtra добавляет слот, которого в шаблоне нет
	ExceptionExtra ExceptionKind = "extra"
)

// Valid проверяет корректность типа исключения
func (k ExceptionKind) Valid() bool {
	return k == ExceptionBlock || k == ExceptionExtra
}

// ScheduleException разовое изменение расписания мастера на конкретную дату
// Уникальность: (мастер, дата, время, тип)
type ScheduleException struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64
	Date       time.Time
	SlotTime   types.TimeString
	Kind       ExceptionKind
	CreatedAt  time.Time
}
