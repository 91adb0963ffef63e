package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/auth"
	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
)

// Carpeta de fotos de perfil dentro del FileStorage.
const profileImagesDir = "users/images"

// CookieConfig cookie de sesión emitida en signup/login.
type CookieConfig struct {
	Name       string
	Secure     bool
	ExpMinutes int
}

// AuthHandler maneja registro, login, logout, contraseña y perfil.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	storage usecase.FileStorage
	cookie  CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, storage usecase.FileStorage, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, storage: storage, cookie: cookie}
}

// Signup godoc
// @Summary      Registrar usuario
// @Description  Crea usuario y perfil e inicia sesión. Un Vendor es redirigido a /create_vendor/.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "username, email, role, password1, password2"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /signup/ [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return err
	}
	h.setSession(c, out.Token)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	h.setSession(c, out.Token)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password1, new_password2"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /accounts/password_change/ [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /profile/ [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar perfil
// @Description  Acepta multipart con la foto en profile_picture.
// @Tags         auth
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        username         formData  string  false  "Username"
// @Param        name             formData  string  false  "Nombre completo"
// @Param        email            formData  string  false  "Email"
// @Param        bio              formData  string  false  "Bio"
// @Param        profile_picture  formData  file    false  "Foto de perfil"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /update-profile/ [post]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if fh, err := c.FormFile("profile_picture"); err == nil {
		up := uploadFrom(fh)
		r, err := up.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		path, err := h.storage.Save(c.UserContext(), profileImagesDir, up.Filename, r)
		if err != nil {
			return err
		}
		in.ImagePath = path
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if in.ImagePath != "" {
			_ = h.storage.Remove(c.UserContext(), in.ImagePath)
		}
		return err
	}
	return c.JSON(out)
}

func (h *AuthHandler) setSession(c *fiber.Ctx, token string) {
	if h.cookie.Name == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(h.cookie.ExpMinutes) * time.Minute),
	})
}
