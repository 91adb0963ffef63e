package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

const permissionColumns = `id, codename, name, category, description, created_by, origin, created_at, updated_at`

// PermissionRepo adaptador de persistencia para permisos.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador. Pasar pool o tx.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// Create inserta el permiso. Codename repetido -> domain.ErrDuplicate.
func (r *PermissionRepo) Create(ctx context.Context, p *entity.Permission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO permissions (id, codename, name, category, description, created_by, origin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Codename, p.Name, p.Category, nullString(p.Description), nullString(p.CreatedBy),
		p.Origin, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("category", "categoría inválida")
		}
		return fmt.Errorf("insert permission: %w", err)
	}
	return nil
}

// GetByID obtiene un permiso por ID.
func (r *PermissionRepo) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	return r.getOne(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id)
}

// GetByCodename obtiene un permiso por codename.
func (r *PermissionRepo) GetByCodename(ctx context.Context, codename string) (*entity.Permission, error) {
	return r.getOne(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE codename = $1`, codename)
}

func (r *PermissionRepo) getOne(ctx context.Context, query, arg string) (*entity.Permission, error) {
	p, err := scanPermission(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return p, nil
}

// List todos los permisos ordenados por categoría y nombre.
func (r *PermissionRepo) List(ctx context.Context) ([]*entity.Permission, error) {
	rows, err := r.q.Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count total de permisos.
func (r *PermissionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM permissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count permissions: %w", err)
	}
	return n, nil
}

// Update actualiza codename, nombre, categoría y descripción.
func (r *PermissionRepo) Update(ctx context.Context, p *entity.Permission) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE permissions SET codename = $2, name = $3, category = $4, description = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Codename, p.Name, p.Category, nullString(p.Description), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateName cambia solo el nombre visible; descripción y categoría quedan intactas.
func (r *PermissionRepo) UpdateName(ctx context.Context, id, name string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE permissions SET name = $2, updated_at = $3 WHERE id = $1`, id, name, at)
	if err != nil {
		return fmt.Errorf("update permission name: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el permiso (y sus grants por cascada).
func (r *PermissionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPermission(row pgx.Row) (*entity.Permission, error) {
	var (
		p                      entity.Permission
		description, createdBy *string
	)
	err := row.Scan(&p.ID, &p.Codename, &p.Name, &p.Category, &description, &createdBy,
		&p.Origin, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = derefString(description)
	p.CreatedBy = derefString(createdBy)
	return &p, nil
}
