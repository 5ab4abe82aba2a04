package toggle_holiday

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

type HolidayStore interface {
	Upsert(ctx context.Context, holiday *domain.Holiday) error
	SetActive(ctx context.Context, date time.Time, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
