package domain

// Политика горизонта записи
const (
	// BaseHorizonDays базовый горизонт записи для клиентов без абонемента и гостей
	BaseHorizonDays = 15

	// StaffHorizonDays горизонт записи для персонала (мастера и менеджеры)
	StaffHorizonDays = 31
)

// Гостевые отмены
const (
	// GuestCancelCutoffHours за сколько часов до начала слота гостевая
	// отмена по токену перестаёт действовать
	GuestCancelCutoffHours = 3
)

// Сетка слотов
const (
	DefaultGranularityMinutes = 30
	MinGranularityMinutes     = 5
	MaxGranularityMinutes     = 240
)

// Таймзона по умолчанию для компаний без явной настройки
const DefaultTimezone = "Europe/Moscow"

// DateFormat формат гражданской даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Валидация
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxGuestNameLength          = 100
	MaxGuestPhoneLength         = 20
)

// InactiveStatuses статусы записей, не занимающих слот
// Используются при подсчёте занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы записей, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
