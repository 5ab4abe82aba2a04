package create_booking

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Request модель запроса на создание записи
// Для гостевого пути Actor - гость, заполнены GuestName и GuestPhone
type Request struct {
	Actor      domain.Actor
	CompanyID  int64
	EmployeeID int64
	ServiceID  int64

	Date      time.Time        // Гражданская дата записи
	StartTime types.TimeString // Время слота, например "10:00"

	GuestName  *string
	GuestPhone *string
	Notes      *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	CompanyID       int64
	EmployeeID      int64
	ServiceID       int64
	ClientID        *int64
	GuestName       *string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	CreatedAt       time.Time

	// CancelToken одноразовый токен гостевой отмены; только для гостевых записей
	CancelToken *string
}
