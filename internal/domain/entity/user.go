package entity

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Roles válidos para User.
const (
	RoleAdmin      = "Admin"
	RoleVendor     = "Vendor"
	RoleNormalUser = "Normal User"
)

// DefaultProfileImage imagen asignada al crear el perfil.
const DefaultProfileImage = "users/images/avatar.png"

// User representa una cuenta del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // Admin, Vendor, Normal User
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// FullName nombre y apellido separados por espacio.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SetFullName separa el nombre en el primer espacio: "Ana María Pérez" -> ("Ana", "María Pérez").
func (u *User) SetFullName(name string) {
	name = strings.TrimSpace(name)
	first, last, found := strings.Cut(name, " ")
	u.FirstName = first
	if found {
		u.LastName = strings.TrimSpace(last)
	}
}

// Profile datos complementarios 1:1 con User. Se crea en la misma transacción que el usuario.
type Profile struct {
	UserID    string
	Bio       string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseRole acepta el valor canónico o la forma compacta ("NormalUser").
func ParseRole(s string) (string, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "admin":
		return RoleAdmin, true
	case "vendor":
		return RoleVendor, true
	case "normaluser", "":
		return RoleNormalUser, true
	}
	return "", false
}

// NormalizeUsername aplica NFKC para que variantes visualmente idénticas colisionen en el índice único.
func NormalizeUsername(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}

// NormalizeEmail pasa a minúsculas el dominio; la parte local se respeta.
func NormalizeEmail(s string) string {
	s = strings.TrimSpace(s)
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return s
	}
	return s[:at] + "@" + strings.ToLower(s[at+1:])
}
