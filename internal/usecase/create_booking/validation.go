package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Actor.IsGuest() {
		if req.GuestName == nil || *req.GuestName == "" {
			return fmt.Errorf("%w: guestName is required for guest booking", ErrInvalidInput)
		}
		if req.GuestPhone == nil || *req.GuestPhone == "" {
			return fmt.Errorf("%w: guestPhone is required for guest booking", ErrInvalidInput)
		}
		if len(*req.GuestName) > domain.MaxGuestNameLength {
			return fmt.Errorf("%w: guestName is too long", ErrInvalidInput)
		}
		if len(*req.GuestPhone) > domain.MaxGuestPhoneLength {
			return fmt.Errorf("%w: guestPhone is too long", ErrInvalidInput)
		}
	} else if req.Actor.ID <= 0 {
		return fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
// Верхнюю границу (горизонт) проверяет сервис eligibility
func validateDate(bookingDate time.Time, now time.Time, loc *time.Location) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, loc)
	local := now.In(loc)
	nowOnly := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
