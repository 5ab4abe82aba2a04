package models

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// ResolveRequest параметры разрешения доступных слотов
type ResolveRequest struct {
	CompanyID  int64
	EmployeeID int64

	// Date гражданская дата в таймзоне компании (значимы только год/месяц/день)
	Date time.Time

	// Actor действующее лицо запроса; определяет горизонт и субботние правила
	Actor domain.Actor

	// GranularityMinutes шаг сетки слотов компании
	GranularityMinutes int

	// Location таймзона компании
	Location *time.Location
}

// HolidayInfo праздник, повлиявший на выдачу слотов
type HolidayInfo struct {
	Name     string
	Behavior domain.HolidayBehavior
}

// AvailabilityResult результат разрешения слотов на дату
// Помимо итогового списка содержит сырые наборы для отображения клиенту
type AvailabilityResult struct {
	// Slots итоговый отсортированный список доступных слотов
	Slots []types.TimeString

	// Union объединение шаблона и extra-исключений до вычитаний
	Union []types.TimeString

	// Blocked слоты, закрытые block-исключениями
	Blocked []types.TimeString

	// Extra слоты, добавленные extra-исключениями
	Extra []types.TimeString

	// Holiday праздник на эту дату, если есть
	Holiday *HolidayInfo

	// Eligibility вычисленные права актора (горизонт, суббота, абонемент)
	Eligibility *domain.Eligibility
}
