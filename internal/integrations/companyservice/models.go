package companyservice

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// Company модель компании (салона) из CompanyService
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Timezone IANA-имя таймзоны компании, например "Europe/Moscow"
	// Все гражданские даты и времена слотов компании живут в ней
	Timezone string `json:"timezone"`

	// SlotGranularityMinutes шаг сетки слотов; 0 означает значение по умолчанию
	SlotGranularityMinutes int `json:"slot_granularity_minutes"`
}

// Location возвращает таймзону компании
// Для пустого или некорректного имени - таймзона по умолчанию
func (c *Company) Location() *time.Location {
	name := c.Timezone
	if name == "" {
		name = domain.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, _ = time.LoadLocation(domain.DefaultTimezone)
	}
	return loc
}

// Granularity возвращает шаг сетки слотов компании в минутах
// Нулевой или выходящий за допустимые границы шаг заменяется значением
// по умолчанию
func (c *Company) Granularity() int {
	g := c.SlotGranularityMinutes
	if g < domain.MinGranularityMinutes || g > domain.MaxGranularityMinutes {
		return domain.DefaultGranularityMinutes
	}
	return g
}

// Employee модель мастера из CompanyService
type Employee struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

// Service модель услуги из CompanyService
type Service struct {
	ID              int64    `json:"id"`
	CompanyID       int64    `json:"company_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`

	// EmployeeIDs мастера, выполняющие услугу
	EmployeeIDs []int64 `json:"employee_ids"`
}

// ProvidedBy проверяет, что услугу выполняет указанный мастер
func (s *Service) ProvidedBy(employeeID int64) bool {
	for _, id := range s.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от CompanyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
