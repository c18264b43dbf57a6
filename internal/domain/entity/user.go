package entity

import "time"

// User usuario de la aplicación. Los permisos se persisten como strings del
// conjunto cerrado Permission y viajan dentro del JWT al hacer login.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string // RoleAdmin | RoleUser
	Permissions  []Permission
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPermission chequeo de capacidad: admin pasa siempre, el resto necesita
// el permiso explícito.
func (u *User) HasPermission(p Permission) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, own := range u.Permissions {
		if own == p {
			return true
		}
	}
	return false
}
