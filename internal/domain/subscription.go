package domain

import "time"

// Subscription абонемент клиента
// В любой момент у клиента может быть не более одного активного абонемента -
// инвариант обеспечивается на уровне приложения при активации
type Subscription struct {
	ID          int64
	CompanyID   int64
	ClientID    int64
	Active      bool
	StartsAt    time.Time
	EndsAt      time.Time
	TotalVisits int
	UsedVisits  int

	// IsHistory выставляется при деактивации; записи не удаляются
	IsHistory bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired возвращает true, если срок действия абонемента истёк
func (s *Subscription) IsExpired(now time.Time) bool {
	return now.After(s.EndsAt)
}

// IsExhausted возвращает true, если все визиты абонемента использованы
func (s *Subscription) IsExhausted() bool {
	return s.UsedVisits >= s.TotalVisits
}
