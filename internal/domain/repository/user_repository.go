package repository

import (
	"context"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y sus grants (DIP).
// Los Get* devuelven (nil, nil) si el registro no existe.
type UserRepository interface {
	// Create devuelve domain.ErrDuplicate si username o email ya existen.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error

	// PermissionCodenames codenames otorgados explícitamente al usuario.
	PermissionCodenames(ctx context.Context, userID string) ([]string, error)
	// PermissionIDs ids de los permisos otorgados al usuario.
	PermissionIDs(ctx context.Context, userID string) ([]string, error)
	// AddPermission es idempotente; added=false si el grant ya existía.
	AddPermission(ctx context.Context, userID, permissionID string) (added bool, err error)
	// RemovePermission es idempotente; removed=false si el grant no existía.
	RemovePermission(ctx context.Context, userID, permissionID string) (removed bool, err error)
}

// ProfileRepository define el puerto de persistencia para Profile.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}
