package get_company_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
)

// BookingView запись в HTTP-ответе
type BookingView struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employeeId"`
	ServiceID       int64   `json:"serviceId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	GuestName       *string `json:"guestName,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
}

// BookingListView HTTP response model
type BookingListView struct {
	Bookings []BookingView `json:"bookings"`
	Total    int           `json:"total"`
}

// ParseQuery собирает фильтр из query-параметров запроса
func ParseQuery(companyID int64, query url.Values) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{CompanyID: companyID}

	if v := query.Get("employeeId"); v != "" {
		employeeID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.EmployeeID = &employeeID
	}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		// Верхняя граница не включается: берём конец указанного дня
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = include
	}

	return req, nil
}

// FromServiceResponse конвертирует список сервиса в HTTP-ответ
func FromServiceResponse(list *models.BookingListResponse) *BookingListView {
	bookings := make([]BookingView, 0, len(list.Bookings))
	for _, b := range list.Bookings {
		bookings = append(bookings, BookingView{
			ID:              b.ID,
			EmployeeID:      b.EmployeeID,
			ServiceID:       b.ServiceID,
			ClientID:        b.ClientID,
			GuestName:       b.GuestName,
			Date:            b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
			ServiceName:     b.ServiceName,
		})
	}
	return &BookingListView{Bookings: bookings, Total: list.Total}
}
