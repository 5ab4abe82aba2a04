package domain

import "time"

// Eligibility результат оценки прав актора на бронирование:
// горизонт записи и ограничения по дням недели
type Eligibility struct {
	// MaxHorizonDays максимальная глубина записи в днях от сегодня
	MaxHorizonDays int

	// Cutoff последняя доступная дата (гражданская, в таймзоне компании)
	Cutoff time.Time

	// SaturdayAllowed доступна ли актору запись на субботу
	SaturdayAllowed bool

	// HasActiveSubscription есть ли у актора действующий абонемент
	HasActiveSubscription bool
}
