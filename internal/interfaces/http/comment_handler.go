package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

// CommentHandler alta de reseñas sobre vendors y productos.
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// AddVendor godoc
// @Summary      Reseñar vendor
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del vendor"
// @Param        body  body  dto.CommentRequest  true  "content, rating (1..5)"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /add-comment/vendor/{id}/ [post]
func (h *CommentHandler) AddVendor(c *fiber.Ctx) error {
	return h.add(c, entity.VendorTarget(c.Params("id")))
}

// AddProduct godoc
// @Summary      Reseñar producto
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del producto"
// @Param        body  body  dto.CommentRequest  true  "content, rating (1..5)"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /add-comment/product/{id}/ [post]
func (h *CommentHandler) AddProduct(c *fiber.Ctx) error {
	return h.add(c, entity.ProductTarget(c.Params("id")))
}

func (h *CommentHandler) add(c *fiber.Ctx, target entity.Target) error {
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Submit(c.UserContext(), GetActor(c), target, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
