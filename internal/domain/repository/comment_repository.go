package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

// CommentRepository define el puerto de persistencia para Comment.
type CommentRepository interface {
	// Create inserta sin verificación previa: la unicidad (usuario, destino) la garantiza la DB.
	// Devuelve domain.ErrDuplicateReview ante la violación del índice único y
	// domain.ErrNotFound si el destino ya no existe.
	Create(ctx context.Context, c *entity.Comment) error
	// ListByTarget reseñas del destino, más recientes primero.
	ListByTarget(ctx context.Context, target entity.Target) ([]*entity.Comment, error)
	// Stats COUNT y AVG(rating) del destino; avg inválido si no hay reseñas.
	Stats(ctx context.Context, target entity.Target) (count int, avg decimal.NullDecimal, err error)
	CountByUserAndTarget(ctx context.Context, userID string, target entity.Target) (int, error)
}
