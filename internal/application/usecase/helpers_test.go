package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
	"github.com/jhoicas/vendor-management/internal/infrastructure/memory"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// ─── fixtures ────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	storage  *fakeStorage
	comments *usecase.CommentUseCase
	vendors  *usecase.VendorUseCase
	products *usecase.ProductUseCase
	perms    *usecase.PermissionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	fs := newFakeStorage()
	comments := usecase.NewCommentUseCase(store.Comments(), store.Vendors(), store.Products(), usecase.NopMetrics{}, log)
	return &fixture{
		store:    store,
		storage:  fs,
		comments: comments,
		vendors:  usecase.NewVendorUseCase(store.Vendors(), store.Products(), store.Documents(), fs, comments, usecase.AccessPolicy{}, log),
		products: usecase.NewProductUseCase(store.Products(), store.Documents(), store.Vendors(), store, fs, comments, usecase.AccessPolicy{}, log),
		perms:    usecase.NewPermissionUseCase(store.Permissions(), store.Users(), usecase.PermissionPolicy{}, usecase.NopMetrics{}, log),
	}
}

// addUser persiste un usuario y devuelve su actor (sin permisos otorgados).
func (f *fixture) addUser(t *testing.T, username, role string) *authz.Actor {
	t.Helper()
	u := &entity.User{
		ID:         "u-" + username,
		Username:   username,
		Email:      username + "@example.com",
		Role:       role,
		IsActive:   true,
		DateJoined: time.Now(),
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return authz.NewActor(u, nil)
}

func (f *fixture) addVendor(t *testing.T, owner *authz.Actor) *entity.Vendor {
	t.Helper()
	v := &entity.Vendor{ID: "v-" + owner.Username, UserID: owner.UserID, Name: "Vendor de " + owner.Username, FoundedYear: 2001, CreatedAt: time.Now()}
	require.NoError(t, f.store.Vendors().Create(context.Background(), v))
	return v
}

func (f *fixture) addProduct(t *testing.T, vendor *entity.Vendor, id string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: id, VendorID: vendor.ID, Name: "Producto " + id, SoftwareType: "ERP", Module: "Core",
		ClientType: "B2B", BusinessArea: "Finanzas", CloudStatus: entity.CloudNative, CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func grant(a *authz.Actor, codenames ...string) *authz.Actor {
	for _, c := range codenames {
		a.Codenames[c] = struct{}{}
	}
	return a
}

// ─── fakes ───────────────────────────────────────────────────────────────────

type fakeStorage struct {
	mu      sync.Mutex
	files   map[string]string
	n       int
	failOn  string
	removed []string
}

func newFakeStorage() *fakeStorage { return &fakeStorage{files: map[string]string{}} }

func (s *fakeStorage) Save(_ context.Context, dir, filename string, r io.Reader) (string, error) {
	if filename == s.failOn {
		return "", errors.New("disco lleno")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	path := dir + "/" + filename
	s.files[path] = string(data)
	return path, nil
}

func (s *fakeStorage) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.removed = append(s.removed, path)
	return nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func upload(name, content string) usecase.Upload {
	return usecase.Upload{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

var errCommit = errors.New("commit falló")

// failingCommit ejecuta fn dentro de la tx y luego simula un commit fallido.
type failingCommit struct{ store *memory.Store }

func (f failingCommit) RunCatalog(ctx context.Context, fn func(repository.ProductRepository, repository.DocumentRepository) error) error {
	return f.store.RunCatalog(ctx, func(p repository.ProductRepository, d repository.DocumentRepository) error {
		if err := fn(p, d); err != nil {
			return err
		}
		return errCommit
	})
}
