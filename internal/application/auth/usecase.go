package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
	"github.com/jhoicas/vendor-management/pkg/jwt"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// Destinos de redirección después del registro.
const (
	RedirectCreateVendor = "/create_vendor/"
	RedirectHome         = "/"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SignupPolicy restricciones del registro público.
type SignupPolicy struct {
	// AllowAdmin permite elegir el rol Admin al registrarse. Sin él las cuentas Admin
	// solo se crean con vendorctl create-superuser.
	AllowAdmin bool
}

// AuthUseCase casos de uso del ciclo de vida de la cuenta: registro, login, contraseña y perfil.
type AuthUseCase struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tx       AccountTxRunner
	jwtCfg   JWTConfig
	signup   SignupPolicy
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, profiles repository.ProfileRepository, tx AccountTxRunner, jwtCfg JWTConfig, signup SignupPolicy, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, profiles: profiles, tx: tx, jwtCfg: jwtCfg, signup: signup, log: log.Component("auth")}
}

// Signup crea usuario y perfil en una transacción y deja la sesión iniciada.
// Las contraseñas deben coincidir byte a byte. Un Vendor es redirigido a crear su vendor.
// El token se firma antes del commit: si falla, la cuenta no queda creada.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	if in.Password1 != in.Password2 {
		return nil, domain.ErrPasswordMismatch
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role", "rol inválido")
	}
	if role == entity.RoleAdmin && !uc.signup.AllowAdmin {
		return nil, domain.NewValidationError("role", "el rol Admin no está disponible en el registro")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     entity.NormalizeUsername(in.Username),
		Email:        entity.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}
	var token string
	err = uc.createAccount(ctx, user, now, func() error {
		var err error
		token, err = uc.issueToken(user)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")

	redirect := RedirectHome
	if user.Role == entity.RoleVendor {
		redirect = RedirectCreateVendor
	}
	return &dto.AuthResponse{Token: token, Redirect: redirect, User: *toUserResponse(user)}, nil
}

// CreateSuperuser crea una cuenta Admin con staff y superuser. Solo se expone en el CLI.
func (uc *AuthUseCase) CreateSuperuser(ctx context.Context, in dto.CreateSuperuserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     entity.NormalizeUsername(in.Username),
		Email:        entity.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
		DateJoined:   now,
		UpdatedAt:    now,
	}
	if err := uc.createAccount(ctx, user, now, nil); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("superusuario creado")
	return toUserResponse(user), nil
}

// createAccount inserta usuario y perfil. beforeCommit corre dentro de la transacción.
func (uc *AuthUseCase) createAccount(ctx context.Context, user *entity.User, now time.Time, beforeCommit func() error) error {
	return uc.tx.RunAccount(ctx, func(users repository.UserRepository, profiles repository.ProfileRepository) error {
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("el usuario ya existe: %w", err)
			}
			return err
		}
		err := profiles.Create(ctx, &entity.Profile{
			UserID:    user.ID,
			Image:     entity.DefaultProfileImage,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil || beforeCommit == nil {
			return err
		}
		return beforeCommit()
	})
}

// Login verifica username/password y genera el token de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.GetByUsername(ctx, entity.NormalizeUsername(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Redirect: RedirectHome, User: *toUserResponse(user)}, nil
}

// ChangePassword exige la contraseña actual y que las dos nuevas coincidan.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.NewValidationError("old_password", "la contraseña actual es incorrecta")
	}
	if in.NewPassword1 != in.NewPassword2 {
		return domain.ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.users.UpdatePassword(ctx, user.ID, string(hash))
}

// Profile devuelve la cuenta y el perfil del usuario.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user, profile), nil
}

// UpdateProfile edita username, nombre, email, bio e imagen. Campos vacíos no se tocan.
// El nombre se separa en el primer espacio; sin espacio el apellido se conserva.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	var (
		user    *entity.User
		profile *entity.Profile
	)
	err := uc.tx.RunAccount(ctx, func(users repository.UserRepository, profiles repository.ProfileRepository) error {
		var err error
		user, err = users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		now := time.Now()
		if in.Username != "" {
			user.Username = entity.NormalizeUsername(in.Username)
		}
		if in.Name != "" {
			user.SetFullName(in.Name)
		}
		if in.Email != "" {
			user.Email = entity.NormalizeEmail(in.Email)
		}
		user.UpdatedAt = now
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		profile, err = profiles.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		create := profile == nil
		if create {
			profile = &entity.Profile{UserID: userID, Image: entity.DefaultProfileImage, CreatedAt: now}
		}
		profile.Bio = in.Bio
		if in.ImagePath != "" {
			profile.Image = in.ImagePath
		}
		profile.UpdatedAt = now
		if create {
			return profiles.Create(ctx, profile)
		}
		return profiles.Update(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("username", "ya existe un usuario con ese username o email")
		}
		return nil, err
	}
	return toProfileResponse(user, profile), nil
}

func (uc *AuthUseCase) issueToken(user *entity.User) (string, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return token, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.DateJoined,
	}
}

func toProfileResponse(u *entity.User, p *entity.Profile) *dto.ProfileResponse {
	out := &dto.ProfileResponse{User: *toUserResponse(u), Image: entity.DefaultProfileImage}
	if p != nil {
		out.Bio = p.Bio
		out.Image = p.Image
	}
	return out
}
