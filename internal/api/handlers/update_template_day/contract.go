package update_template_day

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertTemplateDay(ctx context.Context, req *models.UpsertTemplateDayRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
