package postgres_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/catalog"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/infrastructure/postgres"
	"github.com/jhoicas/vendor-management/internal/infrastructure/storage"
	"github.com/jhoicas/vendor-management/pkg/config"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// createTestDatabase levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve el pool.
func createTestDatabase(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("INTEGRATION_TEST=1 para correr contra PostgreSQL real")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("vendor_management"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pgContainer.Terminate(terminateCtx); err != nil {
			t.Logf("no se pudo detener el contenedor: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, connStr, "up"))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: connStr})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type integrationEnv struct {
	pool     *pgxpool.Pool
	users    *postgres.UserRepo
	perms    *usecase.PermissionUseCase
	vendors  *usecase.VendorUseCase
	products *usecase.ProductUseCase
	comments *usecase.CommentUseCase
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	ctx := context.Background()
	pool := createTestDatabase(ctx, t)
	log := logger.NewNop()
	files, err := storage.NewLocalStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	users := postgres.NewUserRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	comments := usecase.NewCommentUseCase(postgres.NewCommentRepository(pool), vendorRepo, productRepo, usecase.NopMetrics{}, log)
	return &integrationEnv{
		pool:     pool,
		users:    users,
		perms:    usecase.NewPermissionUseCase(postgres.NewPermissionRepository(pool), users, usecase.PermissionPolicy{}, usecase.NopMetrics{}, log),
		vendors:  usecase.NewVendorUseCase(vendorRepo, productRepo, postgres.NewDocumentRepository(pool), files, comments, usecase.AccessPolicy{}, log),
		products: usecase.NewProductUseCase(productRepo, postgres.NewDocumentRepository(pool), vendorRepo, postgres.NewTxRunner(pool), files, comments, usecase.AccessPolicy{}, log),
		comments: comments,
	}
}

func (e *integrationEnv) addUser(t *testing.T, username, role string) *authz.Actor {
	t.Helper()
	u := &entity.User{
		ID: uuid.New().String(), Username: username, Email: username + "@example.com",
		PasswordHash: "x", Role: role, IsActive: true, DateJoined: time.Now(),
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return authz.NewActor(u, nil)
}

func (e *integrationEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func upload(name, content string) usecase.Upload {
	return usecase.Upload{Filename: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}}
}

func TestIntegracion_SiembraIdempotenteYGrantsEnDB(t *testing.T) {
	e := newIntegrationEnv(t)
	ctx := context.Background()

	first, err := e.perms.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, first.Created, len(catalog.Entries()))

	second, err := e.perms.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, len(catalog.Entries()), e.count(t, "permissions"))

	admin := e.addUser(t, "root", entity.RoleAdmin)
	bob := e.addUser(t, "bob", entity.RoleVendor)
	p, err := postgres.NewPermissionRepository(e.pool).GetByCodename(ctx, catalog.CanGenerateVendorProductReport)
	require.NoError(t, err)
	yes, no := true, false

	_, err = e.perms.Assign(ctx, admin, dto.AssignPermissionRequest{UserID: bob.UserID, PermissionID: p.ID, Checked: &yes})
	require.NoError(t, err)
	codenames, err := e.users.PermissionCodenames(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.CanGenerateVendorProductReport}, codenames)

	_, err = e.perms.Assign(ctx, admin, dto.AssignPermissionRequest{UserID: bob.UserID, PermissionID: p.ID, Checked: &no})
	require.NoError(t, err)
	codenames, err = e.users.PermissionCodenames(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, codenames)
}

func TestIntegracion_BorrarVendorEnCascada(t *testing.T) {
	e := newIntegrationEnv(t)
	ctx := context.Background()

	owner := e.addUser(t, "vera", entity.RoleVendor)
	v, err := e.vendors.Create(ctx, owner, dto.VendorRequest{VendorName: "Acme", CompanyEstablishedOn: 2001})
	require.NoError(t, err)

	var productIDs []string
	for _, name := range []string{"Ledger", "Payroll"} {
		p, err := e.products.Create(ctx, owner, dto.ProductRequest{
			VendorID: v.ID, Name: name, SoftwareType: "ERP", Module: "Finanzas",
			ClientType: "Enterprise", BusinessArea: "Contabilidad",
		}, []usecase.Upload{upload(name+".pdf", "contenido")})
		require.NoError(t, err)
		assert.True(t, p.Product.DocumentAttached)
		productIDs = append(productIDs, p.Product.ID)
	}

	for i, reviewer := range []string{"ana", "beto", "caro"} {
		actor := e.addUser(t, reviewer, entity.RoleNormalUser)
		target := entity.ProductTarget(productIDs[i%2])
		if i == 2 {
			target = entity.VendorTarget(v.ID)
		}
		_, err := e.comments.Submit(ctx, actor, target, dto.CommentRequest{Content: "ok", Rating: 3 + i})
		require.NoError(t, err)
	}
	require.Equal(t, 3, e.count(t, "comments"))

	require.NoError(t, e.vendors.Delete(ctx, owner, v.ID))

	assert.Zero(t, e.count(t, "vendors"))
	assert.Zero(t, e.count(t, "products"))
	assert.Zero(t, e.count(t, "documents"))
	assert.Zero(t, e.count(t, "comments"))
}

func TestIntegracion_ReseñasConcurrentesDelMismoUsuario(t *testing.T) {
	e := newIntegrationEnv(t)
	ctx := context.Background()

	owner := e.addUser(t, "vera", entity.RoleVendor)
	v, err := e.vendors.Create(ctx, owner, dto.VendorRequest{VendorName: "Acme", CompanyEstablishedOn: 2001})
	require.NoError(t, err)
	reviewer := e.addUser(t, "ana", entity.RoleNormalUser)

	const attempts = 10
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dupes  int
		unexpected []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, err := e.comments.Submit(ctx, reviewer, entity.VendorTarget(v.ID), dto.CommentRequest{Rating: rating})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDuplicateReview):
				dupes++
			default:
				unexpected = append(unexpected, err)
			}
		}(1 + i%5)
	}
	wg.Wait()

	assert.Empty(t, unexpected)
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dupes)

	reviews, err := e.comments.Reviews(ctx, entity.VendorTarget(v.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, reviews.Count)
}
