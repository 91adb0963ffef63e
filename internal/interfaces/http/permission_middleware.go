package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
)

// actorLoader es el contrato mínimo que necesita el middleware para resolver el actor.
// Lo implementa *usecase.ActorService.
type actorLoader interface {
	Load(ctx context.Context, userID string) (*authz.Actor, error)
}

// LoadActor resuelve en cada request el usuario del token con sus permisos vigentes.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → el usuario del token ya no existe.
//   - 403 Forbidden → cuenta inactiva.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func LoadActor(loader actorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		actor, err := loader.Load(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACTOR_LOAD_FAILED",
				Message: "no se pudo verificar la sesión, intente más tarde",
			})
		}
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "el usuario de la sesión no existe"})
		}
		if !actor.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// RequirePermission exige el codename (o staff, superuser o rol Admin). Va después de LoadActor.
func RequirePermission(codename string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authz.Allow(GetActor(c), codename) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "permiso requerido: " + codename,
			})
		}
		return c.Next()
	}
}
