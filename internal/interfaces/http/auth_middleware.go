package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/pkg/jwt"
)

// Locals keys para UserID, Role y Actor en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalActor  = "actor"
)

// SessionConfig origen y validación del token de sesión.
type SessionConfig struct {
	Secret     string
	CookieName string // si está vacío solo se acepta Authorization: Bearer
}

// AuthMiddleware valida el token de sesión (cookie o Bearer) y deja UserID y Role en c.Locals.
func AuthMiddleware(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := sessionToken(c, cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		userID, role, err := jwt.Parse(cfg.Secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// sessionToken prioriza el header Authorization; si no viene, usa la cookie.
func sessionToken(c *fiber.Ctx, cookieName string) (token, code, msg string) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", "INVALID_TOKEN", "formato: Bearer <token>"
		}
		token = strings.TrimSpace(parts[1])
		if token == "" {
			return "", "MISSING_TOKEN", "token vacío"
		}
		return token, "", ""
	}
	if cookieName != "" {
		if token = c.Cookies(cookieName); token != "" {
			return token, "", ""
		}
	}
	return "", "MISSING_TOKEN", "sesión requerida"
}

// RequireRole permite el acceso solo si el rol del token está en roles.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		if actor := GetActor(c); actor != nil && actor.IsSuperuser {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetActor devuelve el actor cargado por LoadActor, o nil.
func GetActor(c *fiber.Ctx) *authz.Actor {
	a, _ := c.Locals(LocalActor).(*authz.Actor)
	return a
}
