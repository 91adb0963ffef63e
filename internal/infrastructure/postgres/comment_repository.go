package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo adaptador de persistencia para reseñas.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador. Pasar pool o tx.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// targetColumn columna FK según el tipo de destino. Nunca interpola entrada del usuario.
func targetColumn(t entity.Target) (string, error) {
	switch t.Kind {
	case entity.TargetVendor:
		return "vendor_id", nil
	case entity.TargetProduct:
		return "product_id", nil
	}
	return "", domain.NewValidationError("target", "tipo de destino inválido")
}

// Nombres de los CHECK de la tabla comments.
const (
	commentsRatingCheck       = "comments_rating_check"
	commentsSingleTargetCheck = "comments_single_target"
)

// Create inserta la reseña. Los índices únicos parciales resuelven la carrera entre dos
// envíos del mismo usuario: el segundo recibe domain.ErrDuplicateReview.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO comments (id, user_id, vendor_id, product_id, content, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.VendorID, c.ProductID, nullString(c.Content), c.Rating, c.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateReview
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err) && constraintName(err) == commentsSingleTargetCheck:
			return domain.NewValidationError("target", "la reseña debe tener exactamente un destino")
		case isCheckViolation(err) && constraintName(err) == commentsRatingCheck:
			return domain.NewValidationError("rating", "debe estar entre 1 y 5")
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByTarget reseñas del destino con el username del autor, más recientes primero.
func (r *CommentRepo) ListByTarget(ctx context.Context, target entity.Target) ([]*entity.Comment, error) {
	col, err := targetColumn(target)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.user_id, u.username, c.vendor_id, c.product_id, c.content, c.rating, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.`+col+` = $1
		ORDER BY c.created_at DESC`, target.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var (
			c       entity.Comment
			content *string
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Username, &c.VendorID, &c.ProductID, &content, &c.Rating, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Content = derefString(content)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Stats cantidad y promedio exacto del rating del destino. AVG es NULL sin reseñas.
func (r *CommentRepo) Stats(ctx context.Context, target entity.Target) (int, decimal.NullDecimal, error) {
	col, err := targetColumn(target)
	if err != nil {
		return 0, decimal.NullDecimal{}, err
	}
	var (
		count int
		avg   decimal.NullDecimal
	)
	err = r.q.QueryRow(ctx, `SELECT COUNT(*), AVG(rating) FROM comments WHERE `+col+` = $1`, target.ID).
		Scan(&count, &avg)
	if err != nil {
		return 0, decimal.NullDecimal{}, fmt.Errorf("comment stats: %w", err)
	}
	return count, avg, nil
}

// CountByUserAndTarget reseñas del usuario para el destino (0 o 1).
func (r *CommentRepo) CountByUserAndTarget(ctx context.Context, userID string, target entity.Target) (int, error) {
	col, err := targetColumn(target)
	if err != nil {
		return 0, err
	}
	var n int
	err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE user_id = $1 AND `+col+` = $2`, userID, target.ID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count user comments: %w", err)
	}
	return n, nil
}
