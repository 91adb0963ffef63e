// Package authz decide si un actor puede ejecutar una acción.
//
// La decisión se toma sobre un Actor explícito (construido por la capa HTTP en cada
// request) y nunca consulta estado global.
package authz

import "github.com/jhoicas/vendor-management/internal/domain/entity"

// Actor usuario que ejecuta la request, con sus permisos ya resueltos.
type Actor struct {
	UserID      string
	Username    string
	Role        string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	Codenames   map[string]struct{}
}

// NewActor construye el actor a partir del usuario y los codenames otorgados.
func NewActor(u *entity.User, codenames []string) *Actor {
	a := &Actor{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		Codenames:   make(map[string]struct{}, len(codenames)),
	}
	for _, c := range codenames {
		a.Codenames[c] = struct{}{}
	}
	return a
}

// Has informa si el codename fue otorgado explícitamente.
func (a *Actor) Has(codename string) bool {
	if a == nil {
		return false
	}
	_, ok := a.Codenames[codename]
	return ok
}

// Allow decide sobre un codename:
//   - actor nulo o inactivo: denegado;
//   - superuser o staff: permitido siempre;
//   - en otro caso: permitido si el codename está otorgado o el rol es Admin.
func Allow(a *Actor, codename string) bool {
	if a == nil || !a.IsActive {
		return false
	}
	if a.IsSuperuser || a.IsStaff {
		return true
	}
	return a.Has(codename) || a.Role == entity.RoleAdmin
}

// AllowOwner igual que Allow, pero además permite al dueño del recurso.
func AllowOwner(a *Actor, ownerUserID, codename string) bool {
	if a == nil || !a.IsActive {
		return false
	}
	if ownerUserID != "" && a.UserID == ownerUserID {
		return true
	}
	return Allow(a, codename)
}

// HasRole informa si el actor tiene alguno de los roles (superuser siempre pasa).
func HasRole(a *Actor, roles ...string) bool {
	if a == nil || !a.IsActive {
		return false
	}
	if a.IsSuperuser {
		return true
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
