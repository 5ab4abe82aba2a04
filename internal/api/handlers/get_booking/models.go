package get_booking

import (
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
)

// BookingView HTTP response model
type BookingView struct {
	ID              int64   `json:"id"`
	CompanyID       int64   `json:"companyId"`
	EmployeeID      int64   `json:"employeeId"`
	ServiceID       int64   `json:"serviceId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	GuestName       *string `json:"guestName,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP-ответ
func FromServiceResponse(b *models.BookingResponse) *BookingView {
	return &BookingView{
		ID:              b.ID,
		CompanyID:       b.CompanyID,
		EmployeeID:      b.EmployeeID,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		GuestName:       b.GuestName,
		Date:            b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
	}
}
