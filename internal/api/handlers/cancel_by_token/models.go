package cancel_by_token

import (
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
)

// CancelByTokenRequest HTTP request model
type CancelByTokenRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelByTokenRequest) ToServiceRequest(token string) *models.CancelByTokenRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelByTokenRequest{
		Token:              token,
		CancellationReason: reason,
	}
}
