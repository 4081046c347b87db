package entity

import "time"

// Tipos de usuario del panel.
const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user" // personal de sucursal; sin acceso a pantallas administrativas
)

// User representa a un miembro del personal. AuthUserID es el UUID de la cuenta de acceso.
type User struct {
	ID           int64
	AuthUserID   string
	OrgID        int64
	BranchID     int64
	Name         string
	Email        string
	Position     string
	Type         string
	IsActive     bool
	PasswordHash string // bcrypt; nunca sale en las respuestas
	CreatedAt    time.Time

	Branch *Branch // relación opcional (listados)
}

// IsAdmin indica si el usuario puede entrar a las pantallas administrativas.
func (u *User) IsAdmin() bool {
	return u != nil && u.Type == UserTypeAdmin
}
