// Package memory implementa los puertos de repositorio en memoria.
//
// Reproduce las restricciones del esquema PostgreSQL (unicidad, FKs, cascadas) para que
// los casos de uso y los handlers se prueben sin base de datos.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

type grantKey struct{ userID, permissionID string }

type state struct {
	users       map[string]entity.User
	profiles    map[string]entity.Profile
	permissions map[string]entity.Permission
	grants      map[grantKey]time.Time
	vendors     map[string]entity.Vendor
	products    map[string]entity.Product
	documents   map[string]entity.Document
	comments    map[string]entity.Comment
}

func newState() *state {
	return &state{
		users:       map[string]entity.User{},
		profiles:    map[string]entity.Profile{},
		permissions: map[string]entity.Permission{},
		grants:      map[grantKey]time.Time{},
		vendors:     map[string]entity.Vendor{},
		products:    map[string]entity.Product{},
		documents:   map[string]entity.Document{},
		comments:    map[string]entity.Comment{},
	}
}

func (s *state) clone() *state {
	return &state{
		users:       maps.Clone(s.users),
		profiles:    maps.Clone(s.profiles),
		permissions: maps.Clone(s.permissions),
		grants:      maps.Clone(s.grants),
		vendors:     maps.Clone(s.vendors),
		products:    maps.Clone(s.products),
		documents:   maps.Clone(s.documents),
		comments:    maps.Clone(s.comments),
	}
}

// backend da acceso exclusivo al estado: el de la Store o el de una transacción abierta.
type backend interface {
	lock() (*state, func())
}

// Store base de datos en memoria. Segura para uso concurrente.
type Store struct {
	mu   sync.Mutex
	st   *state
	txMu sync.Mutex // serializa transacciones
}

// NewStore crea una Store vacía.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) lock() (*state, func()) {
	s.mu.Lock()
	return s.st, s.mu.Unlock
}

type txBackend struct {
	mu sync.Mutex
	st *state
}

func (t *txBackend) lock() (*state, func()) {
	t.mu.Lock()
	return t.st, t.mu.Unlock
}

// Users repo de usuarios sobre la Store.
func (s *Store) Users() *UserRepo { return &UserRepo{b: s} }

// Profiles repo de perfiles sobre la Store.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{b: s} }

// Permissions repo de permisos sobre la Store.
func (s *Store) Permissions() *PermissionRepo { return &PermissionRepo{b: s} }

// Vendors repo de vendors sobre la Store.
func (s *Store) Vendors() *VendorRepo { return &VendorRepo{b: s} }

// Products repo de productos sobre la Store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{b: s} }

// Documents repo de documentos sobre la Store.
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{b: s} }

// Comments repo de reseñas sobre la Store.
func (s *Store) Comments() *CommentRepo { return &CommentRepo{b: s} }

// within ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// Las escrituras fuera de transacción hechas mientras fn corre se pierden al publicar.
func (s *Store) within(fn func(b backend) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tx := &txBackend{st: s.st.clone()}
	s.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = tx.st
	s.mu.Unlock()
	return nil
}

// RunAccount implementa el runner transaccional de cuentas.
func (s *Store) RunAccount(_ context.Context, fn func(repository.UserRepository, repository.ProfileRepository) error) error {
	return s.within(func(b backend) error {
		return fn(&UserRepo{b: b}, &ProfileRepo{b: b})
	})
}

// RunCatalog implementa el runner transaccional de productos y documentos.
func (s *Store) RunCatalog(_ context.Context, fn func(repository.ProductRepository, repository.DocumentRepository) error) error {
	return s.within(func(b backend) error {
		return fn(&ProductRepo{b: b}, &DocumentRepo{b: b})
	})
}

// cascadas, mismas reglas que ON DELETE CASCADE

func (st *state) deleteProduct(id string) {
	delete(st.products, id)
	for k, d := range st.documents {
		if d.ProductID == id {
			delete(st.documents, k)
		}
	}
	for k, c := range st.comments {
		if c.ProductID != nil && *c.ProductID == id {
			delete(st.comments, k)
		}
	}
}

func (st *state) deleteVendor(id string) {
	delete(st.vendors, id)
	for k, p := range st.products {
		if p.VendorID == id {
			st.deleteProduct(k)
		}
	}
	for k, c := range st.comments {
		if c.VendorID != nil && *c.VendorID == id {
			delete(st.comments, k)
		}
	}
}

func (st *state) deleteUser(id string) {
	delete(st.users, id)
	delete(st.profiles, id)
	for k := range st.grants {
		if k.userID == id {
			delete(st.grants, k)
		}
	}
	for k, v := range st.vendors {
		if v.UserID == id {
			st.deleteVendor(k)
		}
	}
	for k, c := range st.comments {
		if c.UserID == id {
			delete(st.comments, k)
		}
	}
}

func (st *state) deletePermission(id string) {
	delete(st.permissions, id)
	for k := range st.grants {
		if k.permissionID == id {
			delete(st.grants, k)
		}
	}
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
