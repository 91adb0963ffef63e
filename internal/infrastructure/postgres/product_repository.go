package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, vendor_id, name, software_type, module, client_type, business_area, cloud_status,
	last_demo_date, last_review_date, next_review_date, document_attached, additional_information,
	internal_professional_services, created_by, updated_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. document_attached inicia en false.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.VendorID, p.Name, p.SoftwareType, p.Module, p.ClientType, p.BusinessArea, p.CloudStatus,
		p.LastDemoDate, p.LastReviewDate, p.NextReviewDate, p.DocumentAttached, nullString(p.AdditionalInformation),
		p.InternalProfessionalServices, nullString(p.CreatedBy), nullString(p.UpdatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("vendor", "el vendor no existe")
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("cloud_status", "debe ser Enabled, Native o Based")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables. document_attached no se toca aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET vendor_id = $2, name = $3, software_type = $4, module = $5, client_type = $6,
			business_area = $7, cloud_status = $8, last_demo_date = $9, last_review_date = $10,
			next_review_date = $11, additional_information = $12, internal_professional_services = $13,
			updated_by = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.VendorID, p.Name, p.SoftwareType, p.Module, p.ClientType, p.BusinessArea, p.CloudStatus,
		p.LastDemoDate, p.LastReviewDate, p.NextReviewDate, nullString(p.AdditionalInformation),
		p.InternalProfessionalServices, nullString(p.UpdatedBy), p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("vendor", "el vendor no existe")
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto con sus documentos y comentarios (cascada).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos paginados, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByVendor productos de un vendor ordenados por nombre.
func (r *ProductRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE vendor_id = $1 ORDER BY name`, vendorID)
}

// ListAll todos los productos ordenados por nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, created_at`)
}

// Latest los n productos creados más recientemente.
func (r *ProductRepo) Latest(ctx context.Context, n int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1`, n)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// RefreshDocumentAttached recalcula el flag a partir de los documentos con archivo.
// Debe ejecutarse en la misma tx que creó o borró el documento.
func (r *ProductRepo) RefreshDocumentAttached(ctx context.Context, productID string) (bool, error) {
	query := `
		UPDATE products SET document_attached = EXISTS (
			SELECT 1 FROM documents WHERE product_id = $1 AND file_path <> ''
		)
		WHERE id = $1
		RETURNING document_attached`
	var attached bool
	if err := r.q.QueryRow(ctx, query, productID).Scan(&attached); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("refresh document_attached: %w", err)
	}
	return attached, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                          entity.Product
		info, createdBy, updatedBy *string
	)
	err := row.Scan(
		&p.ID, &p.VendorID, &p.Name, &p.SoftwareType, &p.Module, &p.ClientType, &p.BusinessArea, &p.CloudStatus,
		&p.LastDemoDate, &p.LastReviewDate, &p.NextReviewDate, &p.DocumentAttached, &info,
		&p.InternalProfessionalServices, &createdBy, &updatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.AdditionalInformation = derefString(info)
	p.CreatedBy = derefString(createdBy)
	p.UpdatedBy = derefString(updatedBy)
	return &p, nil
}
