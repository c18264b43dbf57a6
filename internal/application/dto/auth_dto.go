package dto

import "time"

// RegisterRequest body de registro de usuario.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role,omitempty"`  // "admin" | "user"; default "user"
	Perms    []string `json:"perms,omitempty"` // subconjunto del enum de permisos
}

// CreateUserRequest body de alta de usuario por un admin. Password es
// opcional; si falta se asigna una contraseña provisional.
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	Role     string   `json:"role"`
	Perms    []string `json:"perms"`
}

// UpdateUserRequest body de edición de usuario por un admin. Todos los campos
// son opcionales; un campo ausente no se toca. Perms presente (aunque vacío)
// reemplaza el set de permisos completo.
type UpdateUserRequest struct {
	Email    *string   `json:"email,omitempty"`
	Password *string   `json:"password,omitempty"`
	Role     *string   `json:"role,omitempty"`
	Perms    *[]string `json:"perms,omitempty"`
}

// LoginRequest body de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Perms     []string  `json:"perms"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
