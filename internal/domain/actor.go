package domain

// Role роль действующего лица, проверенная на стороне API-шлюза
type Role string

const (
	RoleGuest    Role = "guest"
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Valid проверяет корректность роли
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleClient, RoleEmployee, RoleManager:
		return true
	}
	return false
}

// Actor действующее лицо запроса
// Для гостевых путей ID равен нулю, роль - RoleGuest
type Actor struct {
	ID   int64
	Role Role
}

// Guest возвращает гостевого актора
func Guest() Actor {
	return Actor{Role: RoleGuest}
}

// IsStaff возвращает true для персонала компании (мастер или менеджер)
func (a Actor) IsStaff() bool {
	return a.Role == RoleEmployee || a.Role == RoleManager
}

// IsGuest возвращает true для неавторизованного гостя
func (a Actor) IsGuest() bool {
	return a.Role == RoleGuest || a.Role == ""
}
