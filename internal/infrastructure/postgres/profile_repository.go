package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo adaptador de persistencia para perfiles.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create inserta el perfil del usuario.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO profiles (user_id, bio, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.UserID, nullString(p.Bio), p.Image, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByUserID obtiene el perfil del usuario.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var (
		p   entity.Profile
		bio *string
	)
	err := r.q.QueryRow(ctx,
		`SELECT user_id, bio, image, created_at, updated_at FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &bio, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Bio = derefString(bio)
	return &p, nil
}

// Update actualiza bio e imagen.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	_, err := r.q.Exec(ctx,
		`UPDATE profiles SET bio = $2, image = $3, updated_at = $4 WHERE user_id = $1`,
		p.UserID, nullString(p.Bio), p.Image, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
