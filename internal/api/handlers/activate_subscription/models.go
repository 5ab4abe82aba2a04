package activate_subscription

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/subscriptions/models"
)

// ActivateSubscriptionRequest HTTP request model
// Приходит от платёжного сервиса после подтверждения оплаты
type ActivateSubscriptionRequest struct {
	CompanyID   int64   `json:"companyId"`
	ClientID    int64   `json:"clientId"`
	AmountPaid  float64 `json:"amountPaid"`
	PeriodStart string  `json:"periodStart"` // YYYY-MM-DD
	PeriodEnd   string  `json:"periodEnd"`   // YYYY-MM-DD
	TotalVisits int     `json:"totalVisits"`
}

// SubscriptionView HTTP response model
type SubscriptionView struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	ClientID    int64  `json:"clientId"`
	Active      bool   `json:"active"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	TotalVisits int    `json:"totalVisits"`
	UsedVisits  int    `json:"usedVisits"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ActivateSubscriptionRequest) ToServiceRequest() (*models.ActivateRequest, error) {
	start, err := time.Parse(domain.DateFormat, r.PeriodStart)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, r.PeriodEnd)
	if err != nil {
		return nil, err
	}

	return &models.ActivateRequest{
		CompanyID:   r.CompanyID,
		ClientID:    r.ClientID,
		AmountPaid:  r.AmountPaid,
		PeriodStart: start,
		PeriodEnd:   end,
		TotalVisits: r.TotalVisits,
	}, nil
}

// FromServiceResponse конвертирует модель сервиса в HTTP-ответ
func FromServiceResponse(sub *models.SubscriptionResponse) *SubscriptionView {
	return &SubscriptionView{
		ID:          sub.ID,
		CompanyID:   sub.CompanyID,
		ClientID:    sub.ClientID,
		Active:      sub.Active,
		StartsAt:    sub.StartsAt.Format(domain.DateFormat),
		EndsAt:      sub.EndsAt.Format(domain.DateFormat),
		TotalVisits: sub.TotalVisits,
		UsedVisits:  sub.UsedVisits,
	}
}
