package models

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// ActivateRequest событие подтверждённой оплаты абонемента
// Платёжный протокол остаётся за платёжным сервисом; сюда приходит
// уже проверенный факт оплаты
type ActivateRequest struct {
	CompanyID   int64
	ClientID    int64
	AmountPaid  float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalVisits int
}

// SubscriptionResponse абонемент в ответе сервиса
type SubscriptionResponse struct {
	ID          int64
	CompanyID   int64
	ClientID    int64
	Active      bool
	StartsAt    time.Time
	EndsAt      time.Time
	TotalVisits int
	UsedVisits  int
}

// FromDomainSubscription конвертирует абонемент домена в ответ
func FromDomainSubscription(sub *domain.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:          sub.ID,
		CompanyID:   sub.CompanyID,
		ClientID:    sub.ClientID,
		Active:      sub.Active,
		StartsAt:    sub.StartsAt,
		EndsAt:      sub.EndsAt,
		TotalVisits: sub.TotalVisits,
		UsedVisits:  sub.UsedVisits,
	}
}
