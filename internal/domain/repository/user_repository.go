package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios y sus permisos.
type UserRepository interface {
	// Create persiste el usuario con sus permisos; email duplicado ->
	// domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Update reemplaza los campos del usuario y su set de permisos completo
	// en una transacción; email duplicado -> domain.ErrEmailAlreadyExists.
	Update(ctx context.Context, user *entity.User) error
	// Delete elimina el usuario y sus permisos; id desconocido ->
	// domain.ErrUserNotFound.
	Delete(ctx context.Context, id string) error
}
