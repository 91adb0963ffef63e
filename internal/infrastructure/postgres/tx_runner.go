package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool (o un mock de pool en tests).
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// within abre la tx, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccount ejecuta fn con repos de usuarios y perfiles atados a la misma tx (signup).
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewProfileRepository(tx))
	})
}

// RunCatalog ejecuta fn con repos de productos y documentos atados a la misma tx.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	products repository.ProductRepository,
	documents repository.DocumentRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewDocumentRepository(tx))
	})
}
