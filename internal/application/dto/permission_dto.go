package dto

import "time"

// PermissionRequest alta o edición de un permiso.
type PermissionRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=255"`
	Codename    string `json:"codename" form:"codename" validate:"required,max=100"`
	Category    string `json:"category" form:"category" validate:"omitempty,oneof='Vendor Management' 'Product Management' 'Manage User Permissions'"`
	Description string `json:"description" form:"description"`
}

// PermissionResponse salida de un permiso.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Codename    string    `json:"codename"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	Origin      string    `json:"origin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionListResponse lista paginada de permisos.
type PermissionListResponse struct {
	Items []PermissionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// AssignPermissionRequest cuerpo de POST /assign_permission/.
// Checked es puntero para distinguir false de ausente.
type AssignPermissionRequest struct {
	UserID       string `json:"user_id" form:"user_id" validate:"required"`
	PermissionID string `json:"permission_id" form:"permission_id" validate:"required"`
	Checked      *bool  `json:"checked" form:"checked" validate:"required"`
}

// AssignPermissionResponse confirmación de grant o revoke.
type AssignPermissionResponse struct {
	Message string `json:"message"`
	Granted bool   `json:"granted"`
	Changed bool   `json:"changed"`
}

// SeedReportResponse resultado de sembrar el catálogo.
type SeedReportResponse struct {
	Version   int      `json:"version"`
	Created   []string `json:"created"`
	Renamed   []string `json:"renamed"`
	Unchanged []string `json:"unchanged"`
}
