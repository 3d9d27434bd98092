package entity

import "time"

// Role - закрытый набор ролей, других значений в БД быть не должно
type Role string

const (
	RolePrincipal Role = "Principal"
	RoleTeacher   Role = "Teacher"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePrincipal, RoleTeacher:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity - данные сессии, живут в контексте запроса
type Identity struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
