package domain

import (
	"time"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// BookingStatus статус записи
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking запись клиента (или гостя) к мастеру на услугу
// StartAt - абсолютный момент начала; BookingDate и StartTime - его
// гражданское представление в таймзоне компании, в нём же идут все сравнения
type Booking struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64
	ServiceID  int64

	// Либо ClientID (авторизованный клиент), либо гостевые поля
	ClientID   *int64
	GuestName  *string
	GuestPhone *string

	BookingDate     time.Time
	StartTime       types.TimeString
	StartAt         time.Time
	DurationMinutes int
	Status          BookingStatus

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64

	// Флаг начисления баллов лояльности (защита от повторного начисления)
	PointsAwarded bool

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот
// (не отменена и клиент не пропустил визит)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если запись можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal возвращает true, если запись в терминальном статусе
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsGuest возвращает true, если запись создана гостем без аккаунта
func (b *Booking) IsGuest() bool {
	return b.ClientID == nil
}

// EndAt возвращает момент окончания записи
func (b *Booking) EndAt() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BookingsFilter фильтр для выборки записей
type BookingsFilter struct {
	CompanyID       int64 // Обязательный параметр
	EmployeeID      *int64
	ClientID        *int64
	From            *time.Time // Начало периода по StartAt (опционально)
	To              *time.Time // Конец периода по StartAt (опционально)
	Status          *BookingStatus
	IncludeInactive bool // Включать ли отменённые и no-show записи
}
