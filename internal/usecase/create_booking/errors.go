package create_booking

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrEmployeeNotFound возвращается, когда мастер не найден в компании
	ErrEmployeeNotFound = errors.New("create_booking: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotProvided возвращается, когда мастер не оказывает эту услугу
	ErrServiceNotProvided = errors.New("create_booking: service is not provided by this employee")

	// ErrEmployeeInactive возвращается, когда мастер не принимает записи
	ErrEmployeeInactive = errors.New("create_booking: employee is not active")

	// ErrSlotUnavailable возвращается, когда слот недоступен или занят
	// конкурентной записью
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
