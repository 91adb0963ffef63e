package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

// PermissionRepository define el puerto de persistencia para Permission.
type PermissionRepository interface {
	// Create devuelve domain.ErrDuplicate si el codename ya existe.
	Create(ctx context.Context, p *entity.Permission) error
	GetByID(ctx context.Context, id string) (*entity.Permission, error)
	GetByCodename(ctx context.Context, codename string) (*entity.Permission, error)
	List(ctx context.Context) ([]*entity.Permission, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *entity.Permission) error
	// UpdateName cambia solo el nombre visible (usado por la siembra).
	UpdateName(ctx context.Context, id, name string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
