package repository

import (
	"context"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	// Create devuelve domain.ErrDuplicate si el usuario ya tiene un vendor.
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	// Delete borra en cascada productos, documentos y comentarios (FK ON DELETE CASCADE).
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error)
	Count(ctx context.Context) (int, error)
}
