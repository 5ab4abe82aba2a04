package activate_subscription

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	Activate(ctx context.Context, req *models.ActivateRequest) (*models.SubscriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
