package schedule

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrEmployeeNotFound возвращается, когда мастер не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrOverlappingIntervals возвращается, когда интервалы дня пересекаются
	ErrOverlappingIntervals = errors.New("template intervals overlap")

	// ErrIntervalNotAligned возвращается, когда длина интервала не кратна шагу сетки
	ErrIntervalNotAligned = errors.New("interval length is not a multiple of slot granularity")

	// ErrDuplicateException возвращается при попытке создать уже существующее исключение
	ErrDuplicateException = errors.New("schedule exception already exists")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("schedule exception not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
