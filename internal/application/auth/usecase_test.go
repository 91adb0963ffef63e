package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/application/auth"
	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/vendor-management/pkg/jwt"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Profiles(), store,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "vendor-management-test"}, auth.SignupPolicy{}, logger.NewNop())
	return uc, store
}

func signup(t *testing.T, uc *auth.AuthUseCase, username, role string) *dto.AuthResponse {
	t.Helper()
	res, err := uc.Signup(context.Background(), dto.SignupRequest{
		Username: username, Email: username + "@Example.COM", Role: role,
		Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	require.NoError(t, err)
	return res
}

func TestSignup_VendorRedirigeACrearVendor(t *testing.T) {
	uc, store := newAuth(t)

	res := signup(t, uc, "acme", entity.RoleVendor)
	assert.Equal(t, auth.RedirectCreateVendor, res.Redirect)
	assert.Equal(t, "acme@example.com", res.User.Email, "dominio en minúsculas")

	userID, role, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
	assert.Equal(t, entity.RoleVendor, role)

	profile, err := store.Profiles().GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, profile, "el perfil se crea junto al usuario")
	assert.Equal(t, entity.DefaultProfileImage, profile.Image)
}

func TestSignup_NormalUserRedirigeAInicio(t *testing.T) {
	uc, _ := newAuth(t)
	res := signup(t, uc, "ana", "")
	assert.Equal(t, auth.RedirectHome, res.Redirect)
	assert.Equal(t, entity.RoleNormalUser, res.User.Role)
}

func TestSignup_PasswordsDistintas(t *testing.T) {
	uc, store := newAuth(t)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		Username: "ana", Email: "ana@example.com", Password1: "s3cret-pass", Password2: "s3cret-Pass",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	n, err := store.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSignup_UsuarioDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	signup(t, uc, "ana", entity.RoleNormalUser)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		Username: "ana", Email: "otra@example.com", Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignup_RolInvalido(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		Username: "ana", Email: "ana@example.com", Role: "Root", Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	created := signup(t, uc, "ana", entity.RoleNormalUser)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := store.Users().GetByID(ctx, created.User.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, store.Users().Update(ctx, u))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	created := signup(t, uc, "ana", entity.RoleNormalUser)

	err := uc.ChangePassword(ctx, created.User.ID, dto.ChangePasswordRequest{OldPassword: "mala", NewPassword1: "nueva-pass", NewPassword2: "nueva-pass"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "old_password")

	err = uc.ChangePassword(ctx, created.User.ID, dto.ChangePasswordRequest{OldPassword: "s3cret-pass", NewPassword1: "nueva-pass", NewPassword2: "otra-pass"})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	require.NoError(t, uc.ChangePassword(ctx, created.User.ID, dto.ChangePasswordRequest{OldPassword: "s3cret-pass", NewPassword1: "nueva-pass", NewPassword2: "nueva-pass"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "nueva-pass"})
	assert.NoError(t, err)
}

func TestUpdateProfile_SeparaNombre(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	created := signup(t, uc, "ana", entity.RoleNormalUser)

	out, err := uc.UpdateProfile(ctx, created.User.ID, dto.UpdateProfileRequest{Name: "Ana María Pérez", Bio: "hola", ImagePath: "users/images/ana.png"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.User.FirstName)
	assert.Equal(t, "María Pérez", out.User.LastName)
	assert.Equal(t, "hola", out.Bio)
	assert.Equal(t, "users/images/ana.png", out.Image)

	// sin espacio el apellido se conserva
	out, err = uc.UpdateProfile(ctx, created.User.ID, dto.UpdateProfileRequest{Name: "Anita"})
	require.NoError(t, err)
	assert.Equal(t, "Anita", out.User.FirstName)
	assert.Equal(t, "María Pérez", out.User.LastName)
	assert.Equal(t, "users/images/ana.png", out.Image)
}

func TestUpdateProfile_UsernameOcupado(t *testing.T) {
	uc, _ := newAuth(t)
	signup(t, uc, "ana", entity.RoleNormalUser)
	bob := signup(t, uc, "bob", entity.RoleNormalUser)

	_, err := uc.UpdateProfile(context.Background(), bob.User.ID, dto.UpdateProfileRequest{Username: "ana"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "username")
}

func TestCreateSuperuser(t *testing.T) {
	uc, _ := newAuth(t)
	out, err := uc.CreateSuperuser(context.Background(), dto.CreateSuperuserRequest{Username: "root", Email: "root@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.True(t, out.IsSuperuser)
	assert.True(t, out.IsStaff)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestSignup_AdminRechazadoPorDefecto(t *testing.T) {
	uc, store := newAuth(t)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		Username: "mallory", Email: "mallory@example.com", Role: entity.RoleAdmin,
		Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "role")

	u, err := store.Users().GetByUsername(context.Background(), "mallory")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSignup_AdminPermitidoConPolitica(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Profiles(), store,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60}, auth.SignupPolicy{AllowAdmin: true}, logger.NewNop())

	res := signup(t, uc, "root", entity.RoleAdmin)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)
}

func TestSignup_FallaAlFirmarToken_NoPersisteCuenta(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Profiles(), store,
		auth.JWTConfig{Secret: "", ExpMinutes: 60}, auth.SignupPolicy{}, logger.NewNop())

	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		Username: "ana", Email: "ana@example.com",
		Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	require.ErrorContains(t, err, "generar token")

	u, err := store.Users().GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.Nil(t, u, "la transacción se revierte")
	n, err := store.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
