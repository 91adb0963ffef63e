package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo permisos en memoria.
type PermissionRepo struct{ b backend }

func (r *PermissionRepo) Create(_ context.Context, p *entity.Permission) error {
	st, unlock := r.b.lock()
	defer unlock()
	for _, existing := range st.permissions {
		if existing.Codename == p.Codename {
			return domain.ErrDuplicate
		}
	}
	if !entity.ValidCategory(p.Category) {
		return domain.NewValidationError("category", "categoría inválida")
	}
	st.permissions[p.ID] = *p
	return nil
}

func (r *PermissionRepo) GetByID(_ context.Context, id string) (*entity.Permission, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if p, ok := st.permissions[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *PermissionRepo) GetByCodename(_ context.Context, codename string) (*entity.Permission, error) {
	st, unlock := r.b.lock()
	defer unlock()
	for _, p := range st.permissions {
		if p.Codename == codename {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PermissionRepo) List(_ context.Context) ([]*entity.Permission, error) {
	st, unlock := r.b.lock()
	defer unlock()
	list := make([]*entity.Permission, 0, len(st.permissions))
	for _, p := range st.permissions {
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *PermissionRepo) Count(_ context.Context) (int, error) {
	st, unlock := r.b.lock()
	defer unlock()
	return len(st.permissions), nil
}

func (r *PermissionRepo) Update(_ context.Context, p *entity.Permission) error {
	st, unlock := r.b.lock()
	defer unlock()
	cur, ok := st.permissions[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range st.permissions {
		if id != p.ID && other.Codename == p.Codename {
			return domain.ErrDuplicate
		}
	}
	cur.Codename, cur.Name, cur.Category, cur.Description = p.Codename, p.Name, p.Category, p.Description
	cur.UpdatedAt = p.UpdatedAt
	st.permissions[p.ID] = cur
	return nil
}

func (r *PermissionRepo) UpdateName(_ context.Context, id, name string, at time.Time) error {
	st, unlock := r.b.lock()
	defer unlock()
	cur, ok := st.permissions[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.UpdatedAt = name, at
	st.permissions[id] = cur
	return nil
}

func (r *PermissionRepo) Delete(_ context.Context, id string) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.permissions[id]; !ok {
		return domain.ErrNotFound
	}
	st.deletePermission(id)
	return nil
}
