package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// contraseña provisional cuando el admin da de alta sin password; el usuario
// debe cambiarla en su primer acceso.
const provisionalPassword = "changeme123"

// UserAdminUseCase administración de usuarios (solo admin): alta, listado,
// edición de rol/permisos/contraseña y baja.
type UserAdminUseCase struct {
	userRepo repository.UserRepository
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(userRepo repository.UserRepository) *UserAdminUseCase {
	return &UserAdminUseCase{userRepo: userRepo}
}

func normalizeEmail(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func validEmail(s string) bool {
	return s != "" && strings.Contains(s, "@")
}

func validRole(s string) bool {
	return s == entity.RoleAdmin || s == entity.RoleUser
}

// parsePerms valida cada string contra el enum cerrado de permisos.
func parsePerms(in []string) ([]entity.Permission, error) {
	out := make([]entity.Permission, 0, len(in))
	for _, p := range in {
		if !entity.ValidPermission(p) {
			return nil, domain.ErrInvalidInput
		}
		out = append(out, entity.Permission(p))
	}
	return out, nil
}

// ListUsers devuelve todos los usuarios con sus permisos.
func (uc *UserAdminUseCase) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// GetUser obtiene un usuario por ID.
func (uc *UserAdminUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// CreateUser da de alta un usuario con rol y permisos asignados. Sin password
// en el request se asigna la contraseña provisional.
func (uc *UserAdminUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if !validEmail(email) || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	password := in.Password
	if password == "" {
		password = provisionalPassword
	}
	if len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	perms, err := parsePerms(in.Perms)
	if err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Permissions:  perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateUser edita un usuario: cada campo ausente se conserva; Perms presente
// reemplaza el set de permisos completo (no es un merge).
func (uc *UserAdminUseCase) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, domain.ErrInvalidInput
		}
		user.Email = email
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Perms != nil {
		perms, err := parsePerms(*in.Perms)
		if err != nil {
			return nil, err
		}
		user.Permissions = perms
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteUser elimina el usuario y sus permisos.
func (uc *UserAdminUseCase) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.userRepo.Delete(ctx, id)
}
