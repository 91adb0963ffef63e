package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/infrastructure/postgres"
)

// ─── grants ──────────────────────────────────────────────────────────────────

func TestUserRepo_AddPermission_Idempotente(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectExec("INSERT INTO user_permissions").
		WithArgs(testUserID, "perm-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO user_permissions").
		WithArgs(testUserID, "perm-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	added, err := repo.AddPermission(context.Background(), testUserID, "perm-1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddPermission(context.Background(), testUserID, "perm-1")
	require.NoError(t, err)
	assert.False(t, added, "el segundo grant no cambia nada")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_AddPermission_PermisoInexistente(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectExec("INSERT INTO user_permissions").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.AddPermission(context.Background(), testUserID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_RemovePermission_SinGrant(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectExec("DELETE FROM user_permissions").
		WithArgs(testUserID, "perm-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := repo.RemovePermission(context.Background(), testUserID, "perm-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUserRepo_PermissionCodenames(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectQuery("SELECT p.codename FROM user_permissions").
		WithArgs(testUserID).
		WillReturnRows(mock.NewRows([]string{"codename"}).
			AddRow("add_product_record").
			AddRow("view_vendor_record"))

	codes, err := repo.PermissionCodenames(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"add_product_record", "view_vendor_record"}, codes)
}

// ─── cuentas ─────────────────────────────────────────────────────────────────

func TestUserRepo_GetByUsername_NoExiste(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectQuery("FROM users WHERE username = \\$1").
		WithArgs("fantasma").
		WillReturnRows(mock.NewRows([]string{"id"}))

	u, err := repo.GetByUsername(context.Background(), "fantasma")
	assert.NoError(t, err)
	assert.Nil(t, u)
}
