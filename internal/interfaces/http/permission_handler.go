package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/pkg/logger"
	"github.com/jhoicas/vendor-management/pkg/validation"
)

// PermissionHandler administración de permisos y asignación a usuarios.
type PermissionHandler struct {
	uc  *usecase.PermissionUseCase
	log *logger.Logger
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase, log *logger.Logger) *PermissionHandler {
	return &PermissionHandler{uc: uc, log: log.Component("permissions")}
}

// List godoc
// @Summary      Listar permisos
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PermissionListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /permissions/ [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear permiso
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PermissionRequest  true  "name, codename, category, description"
// @Success      201   {object}  dto.PermissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /create_permission/ [post]
func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var in dto.PermissionRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar permiso
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del permiso"
// @Param        body  body  dto.PermissionRequest  true  "name, codename, category, description"
// @Success      200   {object}  dto.PermissionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /update_permission/{id}/ [post]
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	var in dto.PermissionRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar permiso
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del permiso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /permissions/delete/{id}/ [post]
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "permiso eliminado"})
}

// Assign godoc
// @Summary      Otorgar o revocar un permiso
// @Description  checked=true otorga, checked=false revoca. Idempotente. Errores como {"error": "..."}.
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignPermissionRequest  true  "user_id, permission_id, checked"
// @Success      200   {object}  dto.AssignPermissionResponse
// @Failure      400   {object}  dto.SimpleErrorResponse
// @Failure      404   {object}  dto.SimpleErrorResponse
// @Failure      500   {object}  dto.SimpleErrorResponse
// @Router       /assign_permission/ [post]
func (h *PermissionHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: "cuerpo inválido"})
	}
	if err := validation.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: err.Error()})
	}
	out, err := h.uc.Assign(c.UserContext(), GetActor(c), in)
	if err != nil {
		return c.Status(assignStatus(err)).JSON(dto.SimpleErrorResponse{Error: h.assignMessage(c, err)})
	}
	return c.JSON(out)
}

func assignStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func (h *PermissionHandler) assignMessage(c *fiber.Ctx, err error) string {
	if assignStatus(err) == fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("user_id", GetUserID(c)).Msg("asignación de permiso fallida")
		return "error interno al asignar el permiso"
	}
	return err.Error()
}

// Users godoc
// @Summary      Listar usuarios para asignar permisos
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /users/ [get]
func (h *PermissionHandler) Users(c *fiber.Ctx) error {
	out, err := h.uc.Users(c.UserContext(), GetActor(c), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UserDetail godoc
// @Summary      Usuario con sus permisos otorgados
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id}/ [get]
func (h *PermissionHandler) UserDetail(c *fiber.Ctx) error {
	out, err := h.uc.UserDetail(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
