package eligibility

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

var (
	// ErrSaturdayRestricted возвращается, когда актору недоступна запись на субботу
	ErrSaturdayRestricted = errors.New("saturday booking is restricted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("eligibility service: internal error")
)

// HorizonError возвращается, когда запрошенная дата дальше доступного
// горизонта записи. Cutoff - последняя доступная дата для показа клиенту
type HorizonError struct {
	Cutoff time.Time
}

func (e *HorizonError) Error() string {
	return fmt.Sprintf("date is beyond booking horizon, last available date is %s", e.Cutoff.Format(domain.DateFormat))
}
