package create_booking

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	uc "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model для авторизованной записи
type CreateBookingRequest struct {
	CompanyID  int64   `json:"companyId"`
	EmployeeID int64   `json:"employeeId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime"` // HH:MM
	Notes      *string `json:"notes,omitempty"`
}

// CreateGuestBookingRequest HTTP request model для гостевой записи
type CreateGuestBookingRequest struct {
	CompanyID  int64   `json:"companyId"`
	EmployeeID int64   `json:"employeeId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	GuestName  string  `json:"guestName"`
	GuestPhone string  `json:"guestPhone"`
	Notes      *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
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

	// CancelToken токен гостевой отмены, только в ответе на гостевую запись
	CancelToken *string `json:"cancelToken,omitempty"`
}

// toUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) toUseCaseRequest(actor domain.Actor) (*uc.Request, error) {
	date, startTime, err := parseDateTime(r.Date, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &uc.Request{
		Actor:      actor,
		CompanyID:  r.CompanyID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// toUseCaseRequest конвертирует гостевой HTTP request в модель usecase
func (r *CreateGuestBookingRequest) toUseCaseRequest() (*uc.Request, error) {
	date, startTime, err := parseDateTime(r.Date, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &uc.Request{
		Actor:      domain.Guest(),
		CompanyID:  r.CompanyID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		GuestName:  &r.GuestName,
		GuestPhone: &r.GuestPhone,
		Notes:      r.Notes,
	}, nil
}

func parseDateTime(dateStr, timeStr string) (time.Time, types.TimeString, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, "", err
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, "", err
	}

	return date, startTime, nil
}

// fromUseCaseResponse конвертирует ответ usecase в HTTP-модель
func fromUseCaseResponse(resp *uc.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		CompanyID:       resp.CompanyID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		GuestName:       resp.GuestName,
		Date:            resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CancelToken:     resp.CancelToken,
	}
}
