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

var _ repository.VendorRepository = (*VendorRepo)(nil)

const vendorColumns = `id, user_id, vendor_name, company_website_url, company_established_on, no_of_employees,
	country, city, address, phone_number, description, created_by, updated_by, created_at, updated_at`

// VendorRepo adaptador de persistencia para vendors.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create inserta el vendor. Un segundo vendor para el mismo usuario -> domain.ErrDuplicate.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vendors (id, user_id, vendor_name, company_website_url, company_established_on, no_of_employees,
			country, city, address, phone_number, description, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		v.ID, v.UserID, v.Name, nullString(v.WebsiteURL), v.FoundedYear, nullString(v.EmployeesBand),
		nullString(v.Country), nullString(v.City), nullString(v.Address), nullString(v.PhoneNumber),
		nullString(v.Description), nullString(v.CreatedBy), nullString(v.UpdatedBy), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un vendor por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

// GetByUserID obtiene el vendor del usuario.
func (r *VendorRepo) GetByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE user_id = $1`, userID)
}

func (r *VendorRepo) getOne(ctx context.Context, query, arg string) (*entity.Vendor, error) {
	v, err := scanVendor(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// Update actualiza los datos editables del vendor (el dueño no cambia).
func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE vendors SET vendor_name = $2, company_website_url = $3, company_established_on = $4,
			no_of_employees = $5, country = $6, city = $7, address = $8, phone_number = $9,
			description = $10, updated_by = $11, updated_at = $12
		WHERE id = $1`,
		v.ID, v.Name, nullString(v.WebsiteURL), v.FoundedYear, nullString(v.EmployeesBand),
		nullString(v.Country), nullString(v.City), nullString(v.Address), nullString(v.PhoneNumber),
		nullString(v.Description), nullString(v.UpdatedBy), v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el vendor; productos, documentos y comentarios caen por cascada.
func (r *VendorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista vendors con paginación (más recientes primero).
func (r *VendorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+vendorColumns+` FROM vendors ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Count total de vendors.
func (r *VendorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM vendors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendors: %w", err)
	}
	return n, nil
}

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var (
		v                                          entity.Vendor
		website, employees, country, city, address *string
		phone, description, createdBy, updatedBy   *string
	)
	err := row.Scan(&v.ID, &v.UserID, &v.Name, &website, &v.FoundedYear, &employees,
		&country, &city, &address, &phone, &description, &createdBy, &updatedBy, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.WebsiteURL = derefString(website)
	v.EmployeesBand = derefString(employees)
	v.Country = derefString(country)
	v.City = derefString(city)
	v.Address = derefString(address)
	v.PhoneNumber = derefString(phone)
	v.Description = derefString(description)
	v.CreatedBy = derefString(createdBy)
	v.UpdatedBy = derefString(updatedBy)
	return &v, nil
}
