package models

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// IntervalInput открытый интервал из запроса на замену дня
type IntervalInput struct {
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// UpsertTemplateDayRequest запрос на замену шаблона одного дня недели целиком
// Частичные изменения дня не поддерживаются
type UpsertTemplateDayRequest struct {
	CompanyID  int64
	EmployeeID int64
	Weekday    time.Weekday
	Intervals  []IntervalInput
}

// AddExceptionRequest запрос на создание разового исключения
type AddExceptionRequest struct {
	CompanyID  int64
	EmployeeID int64
	Date       time.Time
	SlotTime   types.TimeString
	Kind       domain.ExceptionKind
}

// RemoveExceptionRequest запрос на удаление разового исключения
type RemoveExceptionRequest struct {
	CompanyID  int64
	EmployeeID int64
	Date       time.Time
	SlotTime   types.TimeString
	Kind       domain.ExceptionKind
}

// DayTemplate шаблон одного дня недели
type DayTemplate struct {
	Weekday   time.Weekday
	Intervals []IntervalInput
}

// ExceptionView разовое исключение в ответе
type ExceptionView struct {
	Date     time.Time
	SlotTime types.TimeString
	Kind     domain.ExceptionKind
}

// ScheduleResponse недельный шаблон мастера и действующие исключения
type ScheduleResponse struct {
	CompanyID  int64
	EmployeeID int64
	Days       []DayTemplate
	Exceptions []ExceptionView
}

// FromDomainIntervals конвертирует интервалы домена в ответ
func FromDomainIntervals(intervals []*domain.TemplateInterval) []IntervalInput {
	result := make([]IntervalInput, 0, len(intervals))
	for _, interval := range intervals {
		result = append(result, IntervalInput{
			OpenTime:  interval.OpenTime,
			CloseTime: interval.CloseTime,
		})
	}
	return result
}

// FromDomainExceptions конвертирует исключения домена в ответ
func FromDomainExceptions(exceptions []*domain.ScheduleException) []ExceptionView {
	result := make([]ExceptionView, 0, len(exceptions))
	for _, exc := range exceptions {
		result = append(result, ExceptionView{
			Date:     exc.Date,
			SlotTime: exc.SlotTime,
			Kind:     exc.Kind,
		})
	}
	return result
}
