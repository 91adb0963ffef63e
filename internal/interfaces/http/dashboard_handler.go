package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/usecase"
)

// DashboardHandler portada de la aplicación.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Portada: contadores y últimos productos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       / [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetActor(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
