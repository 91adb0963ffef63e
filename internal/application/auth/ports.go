package auth

import (
	"context"

	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

// AccountTxRunner ejecuta fn con repos de usuarios y perfiles atados a una misma transacción.
// Usuario y perfil se crean juntos o no se crea ninguno.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		users repository.UserRepository,
		profiles repository.ProfileRepository,
	) error) error
}
