package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo reseñas en memoria. La unicidad (usuario, destino) se verifica e inserta
// bajo el mismo lock, igual que el índice único parcial.
type CommentRepo struct{ b backend }

func (r *CommentRepo) Create(_ context.Context, c *entity.Comment) error {
	st, unlock := r.b.lock()
	defer unlock()
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := st.users[c.UserID]; !ok {
		return domain.ErrNotFound
	}
	target := c.Target()
	if !targetExists(st, target) {
		return domain.ErrNotFound
	}
	for _, existing := range st.comments {
		if existing.UserID == c.UserID && existing.Target() == target {
			return domain.ErrDuplicateReview
		}
	}
	st.comments[c.ID] = *c
	return nil
}

func targetExists(st *state, t entity.Target) bool {
	switch t.Kind {
	case entity.TargetVendor:
		_, ok := st.vendors[t.ID]
		return ok
	case entity.TargetProduct:
		_, ok := st.products[t.ID]
		return ok
	}
	return false
}

func (r *CommentRepo) byTarget(target entity.Target) ([]*entity.Comment, error) {
	if !target.Valid() {
		return nil, domain.NewValidationError("target", "tipo de destino inválido")
	}
	st, unlock := r.b.lock()
	defer unlock()
	var list []*entity.Comment
	for _, c := range st.comments {
		if c.Target() == target {
			c.Username = st.users[c.UserID].Username
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *CommentRepo) ListByTarget(_ context.Context, target entity.Target) ([]*entity.Comment, error) {
	return r.byTarget(target)
}

func (r *CommentRepo) Stats(_ context.Context, target entity.Target) (int, decimal.NullDecimal, error) {
	list, err := r.byTarget(target)
	if err != nil || len(list) == 0 {
		return 0, decimal.NullDecimal{}, err
	}
	sum := int64(0)
	for _, c := range list {
		sum += int64(c.Rating)
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(list))))
	return len(list), decimal.NullDecimal{Decimal: avg, Valid: true}, nil
}

func (r *CommentRepo) CountByUserAndTarget(_ context.Context, userID string, target entity.Target) (int, error) {
	list, err := r.byTarget(target)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range list {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}
