package domain

import "time"

// HolidayBehavior поведение бронирования в праздничный день
type HolidayBehavior string

const (
	// HolidayBlockAll блокирует все слоты; мастер может открыть
	// отдельные extra-исключения на этот день
	HolidayBlockAll HolidayBehavior = "block_all"

	// HolidayExceptionsOnly оставляет доступными только явно открытые
	// extra-слоты, для всех ролей
	HolidayExceptionsOnly HolidayBehavior = "exceptions_only"
)

// Valid проверяет корректность поведения праздника
func (b HolidayBehavior) Valid() bool {
	return b == HolidayBlockAll || b == HolidayExceptionsOnly
}

// Holiday праздничный день
// Привязан к календарной дате, общий для всех компаний
// Деактивируется флагом Active, записи не удаляются
type Holiday struct {
	ID        int64
	Date      time.Time
	Name      string
	Behavior  HolidayBehavior
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
