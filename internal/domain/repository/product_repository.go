package repository

import (
	"context"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete borra en cascada documentos y comentarios.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Product, error)
	// ListAll todos los productos ordenados por nombre (exportaciones).
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Latest(ctx context.Context, n int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	// RefreshDocumentAttached recalcula el flag desde la tabla documents y devuelve el valor nuevo.
	RefreshDocumentAttached(ctx context.Context, productID string) (bool, error)
}

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
