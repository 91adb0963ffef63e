package dto

import "time"

// SignupRequest entrada del registro. Password1 y Password2 deben coincidir exactamente.
type SignupRequest struct {
	Username  string `json:"username" form:"username" validate:"required,min=1,max=150"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Role      string `json:"role" form:"role" validate:"omitempty,oneof=Admin Vendor NormalUser 'Normal User'"`
	Password1 string `json:"password1" form:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" form:"password2" validate:"required"`
}

// LoginRequest entrada del login por username.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthResponse token de sesión, usuario y destino al que redirigir.
type AuthResponse struct {
	Token    string       `json:"token"`
	Redirect string       `json:"redirect"`
	User     UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword1 string `json:"new_password1" form:"new_password1" validate:"required,min=8"`
	NewPassword2 string `json:"new_password2" form:"new_password2" validate:"required"`
}

// UpdateProfileRequest edición de cuenta y perfil. Name se separa en el primer espacio.
// ImagePath lo completa el handler cuando se sube una imagen.
type UpdateProfileRequest struct {
	Username  string `json:"username" form:"username" validate:"omitempty,max=150"`
	Name      string `json:"name" form:"name" validate:"omitempty,max=300"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Bio       string `json:"bio" form:"bio"`
	ImagePath string `json:"-" form:"-"`
}

// CreateSuperuserRequest entrada del comando create-superuser.
type CreateSuperuserRequest struct {
	Username string `validate:"required,max=150"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
}

// ProfileResponse cuenta más perfil.
type ProfileResponse struct {
	User  UserResponse `json:"user"`
	Bio   string       `json:"bio"`
	Image string       `json:"image"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UserDetailResponse usuario con el catálogo completo de permisos y los ids otorgados.
type UserDetailResponse struct {
	User        UserResponse         `json:"user"`
	Permissions []PermissionResponse `json:"permissions"`
	GrantedIDs  []string             `json:"granted_ids"`
}
