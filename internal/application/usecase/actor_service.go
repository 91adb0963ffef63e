package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

// ActorService resuelve el actor de cada request: usuario, rol, flags y permisos otorgados.
// Es el único punto de la aplicación que sabe de dónde salen los permisos de un usuario.
type ActorService struct {
	users repository.UserRepository
}

// NewActorService construye el servicio de actores.
func NewActorService(users repository.UserRepository) *ActorService {
	return &ActorService{users: users}
}

// Load devuelve el actor del usuario, o nil (sin error) si el usuario ya no existe.
// Devuelve error solo ante fallos de infraestructura.
func (s *ActorService) Load(ctx context.Context, userID string) (*authz.Actor, error) {
	if userID == "" {
		return nil, fmt.Errorf("actor: userID es obligatorio")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	codenames, err := s.users.PermissionCodenames(ctx, userID)
	if err != nil {
		return nil, err
	}
	return authz.NewActor(user, codenames), nil
}
