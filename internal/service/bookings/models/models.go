package models

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// GetCompanyBookingsRequest запрос списка записей компании
type GetCompanyBookingsRequest struct {
	CompanyID       int64
	EmployeeID      *int64
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// CancelBookingRequest запрос на отмену записи авторизованным актором
type CancelBookingRequest struct {
	Actor              domain.Actor
	CancellationReason string
}

// CancelByTokenRequest запрос гостевой отмены по токену
type CancelByTokenRequest struct {
	Token              string
	CancellationReason string
}

// BookingResponse запись в ответе сервиса
type BookingResponse struct {
	ID              int64
	CompanyID       int64
	EmployeeID      int64
	ServiceID       int64
	ClientID        *int64
	GuestName       *string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          domain.BookingStatus
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	CreatedAt       time.Time
}

// BookingListResponse список записей
type BookingListResponse struct {
	Bookings []BookingResponse
	Total    int
}

// FromDomainBooking конвертирует запись домена в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		CompanyID:       b.CompanyID,
		EmployeeID:      b.EmployeeID,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		GuestName:       b.GuestName,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список записей домена в ответ
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}

// ToDomainBookingStatus валидирует и конвертирует статус из строки
func ToDomainBookingStatus(status string) (domain.BookingStatus, bool) {
	s := domain.BookingStatus(status)
	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelled, domain.StatusNoShow:
		return s, true
	}
	return "", false
}
