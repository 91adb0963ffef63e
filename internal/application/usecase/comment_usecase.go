package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
	"github.com/jhoicas/vendor-management/internal/domain/review"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// CommentUseCase alta de reseñas y agregación de calificaciones.
type CommentUseCase struct {
	comments repository.CommentRepository
	vendors  repository.VendorRepository
	products repository.ProductRepository
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(
	comments repository.CommentRepository,
	vendors repository.VendorRepository,
	products repository.ProductRepository,
	metrics Metrics,
	log *logger.Logger,
) *CommentUseCase {
	return &CommentUseCase{
		comments: comments,
		vendors:  vendors,
		products: products,
		metrics:  metrics,
		log:      log.Component("reviews"),
		now:      time.Now,
	}
}

// Submit registra la reseña del actor sobre el destino.
// Rating fuera de [1,5] se rechaza antes de escribir. Una segunda reseña del mismo usuario
// para el mismo destino devuelve domain.ErrDuplicateReview y la primera queda intacta;
// el índice único de la DB resuelve los envíos simultáneos.
func (uc *CommentUseCase) Submit(ctx context.Context, actor *authz.Actor, target entity.Target, in dto.CommentRequest) (*dto.CommentResponse, error) {
	if actor == nil || !actor.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := entity.ValidateRating(in.Rating); err != nil {
		uc.metrics.ReviewSubmitted(target.Kind, "invalid")
		return nil, err
	}
	if !target.Valid() {
		return nil, domain.NewValidationError("target", "tipo de destino inválido")
	}
	exists, err := uc.targetExists(ctx, target)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	c := entity.NewComment(uuid.New().String(), actor.UserID, target, in.Content, in.Rating, uc.now())
	if err := uc.comments.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			uc.metrics.ReviewSubmitted(target.Kind, "duplicate")
		}
		return nil, err
	}
	c.Username = actor.Username
	uc.metrics.ReviewSubmitted(target.Kind, "created")
	uc.log.Debug().Str("user_id", actor.UserID).Str("target", target.Kind).Str("target_id", target.ID).
		Int("rating", c.Rating).Msg("reseña registrada")

	out := toCommentResponse(c)
	return &out, nil
}

func (uc *CommentUseCase) targetExists(ctx context.Context, t entity.Target) (bool, error) {
	switch t.Kind {
	case entity.TargetVendor:
		v, err := uc.vendors.GetByID(ctx, t.ID)
		return v != nil, err
	case entity.TargetProduct:
		p, err := uc.products.GetByID(ctx, t.ID)
		return p != nil, err
	}
	return false, nil
}

// Reviews reseñas del destino (más recientes primero) con cantidad y promedio redondeado.
// Sin reseñas el promedio es nil.
func (uc *CommentUseCase) Reviews(ctx context.Context, target entity.Target) (*dto.ReviewsResponse, error) {
	list, err := uc.comments.ListByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	count, avg, err := uc.comments.Stats(ctx, target)
	if err != nil {
		return nil, err
	}
	summary := review.Summarize(count, avg)

	out := &dto.ReviewsResponse{
		Count:   summary.Count,
		Average: summary.Average,
		Items:   make([]dto.CommentResponse, 0, len(list)),
	}
	if summary.Exact.Valid {
		exact := summary.Exact.Decimal.StringFixed(2)
		out.Exact = &exact
	}
	for _, c := range list {
		out.Items = append(out.Items, toCommentResponse(c))
	}
	return out, nil
}
