package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var (
	_ repository.VendorRepository   = (*VendorRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
)

// VendorRepo vendors en memoria.
type VendorRepo struct{ b backend }

func (r *VendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.users[v.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, existing := range st.vendors {
		if existing.UserID == v.UserID {
			return domain.ErrDuplicate
		}
	}
	st.vendors[v.ID] = *v
	return nil
}

func (r *VendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if v, ok := st.vendors[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *VendorRepo) GetByUserID(_ context.Context, userID string) (*entity.Vendor, error) {
	st, unlock := r.b.lock()
	defer unlock()
	for _, v := range st.vendors {
		if v.UserID == userID {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *VendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	st, unlock := r.b.lock()
	defer unlock()
	cur, ok := st.vendors[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *v
	updated.UserID, updated.CreatedBy, updated.CreatedAt = cur.UserID, cur.CreatedBy, cur.CreatedAt
	st.vendors[v.ID] = updated
	return nil
}

func (r *VendorRepo) Delete(_ context.Context, id string) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.vendors[id]; !ok {
		return domain.ErrNotFound
	}
	st.deleteVendor(id)
	return nil
}

func (r *VendorRepo) List(_ context.Context, limit, offset int) ([]*entity.Vendor, error) {
	st, unlock := r.b.lock()
	defer unlock()
	list := make([]*entity.Vendor, 0, len(st.vendors))
	for _, v := range st.vendors {
		list = append(list, &v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *VendorRepo) Count(_ context.Context) (int, error) {
	st, unlock := r.b.lock()
	defer unlock()
	return len(st.vendors), nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ b backend }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.vendors[p.VendorID]; !ok {
		return domain.NewValidationError("vendor", "el vendor no existe")
	}
	st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if p, ok := st.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	st, unlock := r.b.lock()
	defer unlock()
	cur, ok := st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := st.vendors[p.VendorID]; !ok {
		return domain.NewValidationError("vendor", "el vendor no existe")
	}
	updated := *p
	updated.DocumentAttached, updated.CreatedBy, updated.CreatedAt = cur.DocumentAttached, cur.CreatedBy, cur.CreatedAt
	st.products[p.ID] = updated
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.products[id]; !ok {
		return domain.ErrNotFound
	}
	st.deleteProduct(id)
	return nil
}

func (r *ProductRepo) all(filter func(entity.Product) bool, less func(a, b *entity.Product) bool) []*entity.Product {
	st, unlock := r.b.lock()
	defer unlock()
	list := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		if filter == nil || filter(p) {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	return list
}

func newestFirst(a, b *entity.Product) bool { return a.CreatedAt.After(b.CreatedAt) }

func byName(a, b *entity.Product) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return page(r.all(nil, newestFirst), limit, offset), nil
}

func (r *ProductRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.Product, error) {
	return r.all(func(p entity.Product) bool { return p.VendorID == vendorID }, byName), nil
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	return r.all(nil, byName), nil
}

func (r *ProductRepo) Latest(_ context.Context, n int) ([]*entity.Product, error) {
	return page(r.all(nil, newestFirst), n, 0), nil
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	st, unlock := r.b.lock()
	defer unlock()
	return len(st.products), nil
}

func (r *ProductRepo) RefreshDocumentAttached(_ context.Context, productID string) (bool, error) {
	st, unlock := r.b.lock()
	defer unlock()
	p, ok := st.products[productID]
	if !ok {
		return false, domain.ErrNotFound
	}
	attached := false
	for _, d := range st.documents {
		if d.ProductID == productID && d.HasFile() {
			attached = true
			break
		}
	}
	p.DocumentAttached = attached
	st.products[productID] = p
	return attached, nil
}

// DocumentRepo documentos en memoria.
type DocumentRepo struct{ b backend }

func (r *DocumentRepo) Create(_ context.Context, d *entity.Document) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.products[d.ProductID]; !ok {
		return domain.ErrNotFound
	}
	st.documents[d.ID] = *d
	return nil
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if d, ok := st.documents[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *DocumentRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Document, error) {
	st, unlock := r.b.lock()
	defer unlock()
	var list []*entity.Document
	for _, d := range st.documents {
		if d.ProductID == productID {
			list = append(list, &d)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(st.documents, id)
	return nil
}
