package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Inventario-maquinas/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard de máquinas.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Machines devuelve el resumen por máquina y los totales globales.
// GET /api/dashboard/machines?lines=true
//
// Con lines=true cada máquina incluye sus líneas (material, stock vivo, estado).
func (h *DashboardHandler) Machines(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.QueryBool("lines", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
