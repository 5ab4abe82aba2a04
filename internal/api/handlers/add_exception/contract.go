package add_exception

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	AddException(ctx context.Context, req *models.AddExceptionRequest) (*models.ExceptionView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
