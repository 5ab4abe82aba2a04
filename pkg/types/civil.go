package types

import (
	"fmt"
	"time"
)

// Гражданское время: дата и время так, как их видит бизнес в своей таймзоне.
// Все сравнения дат и слотов в сервисе идут через эти функции, никогда через
// сырое UTC-представление инстанта - иначе на границе суток дата "уезжает".

// ExpandInterval разворачивает интервал [open, close] в упорядоченный список
// времен с шагом granularityMinutes. Время закрытия включается в результат
// всегда, даже если оно не кратно шагу: закрывающий слот предлагается для
// записи наравне с остальными.
func ExpandInterval(open, close TimeString, granularityMinutes int) ([]TimeString, error) {
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", ErrTimeOutOfRange)
	}
	if err := open.Validate(); err != nil {
		return nil, err
	}
	if err := close.Validate(); err != nil {
		return nil, err
	}
	if !open.IsBefore(close) {
		return nil, fmt.Errorf("%w: open %s must be before close %s", ErrInvalidTimeString, open, close)
	}

	slots := make([]TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slots = append(slots, current)
		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			// Вышли за пределы суток - дальше шагать некуда
			break
		}
		current = next
	}

	// Время закрытия - тоже доступный слот
	slots = append(slots, close)

	return slots, nil
}

// ToCivilInstant собирает абсолютный момент времени из гражданской даты,
// времени слота и таймзоны компании
func ToCivilInstant(date time.Time, t TimeString, loc *time.Location) time.Time {
	minutes := t.Minutes()
	if minutes < 0 {
		minutes = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc)
}

// FromCivilInstant раскладывает абсолютный момент на гражданскую дату
// (полночь в таймзоне компании) и время слота
func FromCivilInstant(instant time.Time, loc *time.Location) (time.Time, TimeString) {
	local := instant.In(loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return date, NewTimeString(local)
}

// CivilDate возвращает полночь даты момента t в таймзоне loc
func CivilDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// SameCivilDay проверяет, что два момента приходятся на один календарный день
// в таймзоне loc
func SameCivilDay(a, b time.Time, loc *time.Location) bool {
	return CivilDate(a, loc).Equal(CivilDate(b, loc))
}

// UTCMinuteOfDay возвращает количество минут с полуночи UTC для момента t
func UTCMinuteOfDay(t time.Time) int {
	utc := t.UTC()
	return utc.Hour()*60 + utc.Minute()
}
