package entity

import "time"

// Categorías de permisos.
const (
	CategoryVendorManagement      = "Vendor Management"
	CategoryProductManagement     = "Product Management"
	CategoryManageUserPermissions = "Manage User Permissions"
)

// Origen de un permiso: sembrado desde el catálogo o creado por un administrador.
const (
	OriginCatalog = "catalog"
	OriginCustom  = "custom"
)

// PermissionRef identidad mínima de un permiso: lo que usan las comprobaciones y los grants.
type PermissionRef struct {
	ID       string
	Codename string
}

// Permission registro completo del permiso (nombre visible, categoría, descripción).
type Permission struct {
	PermissionRef
	Name        string
	Category    string
	Description string
	CreatedBy   string
	Origin      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidCategory informa si la categoría es una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryVendorManagement, CategoryProductManagement, CategoryManageUserPermissions:
		return true
	}
	return false
}
