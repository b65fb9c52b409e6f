package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Inventario-maquinas/internal/application/analytics"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/application/usecase"
)

// MachineHandler máquinas, su historial de asignaciones y el reporte PDF.
type MachineHandler struct {
	allocations *inventory.AllocationUseCase
	refs        *usecase.ReferenceUseCase
	dashboard   *appanalytics.DashboardUseCase
}

// NewMachineHandler construye el handler.
func NewMachineHandler(allocations *inventory.AllocationUseCase, refs *usecase.ReferenceUseCase, dashboard *appanalytics.DashboardUseCase) *MachineHandler {
	return &MachineHandler{allocations: allocations, refs: refs, dashboard: dashboard}
}

// List godoc
// @Summary      Listar máquinas
// @Tags         machines
// @Produce      json
// @Success      200  {array}  dto.MachineResponse
// @Router       /api/machines [get]
func (h *MachineHandler) List(c *fiber.Ctx) error {
	out, err := h.refs.ListMachines(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de stock por material asignado a la máquina
// @Tags         machines
// @Produce      json
// @Param        id   path  string  true  "ID de la máquina"
// @Success      200  {object}  dto.MachineHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/machines/{id}/history [get]
func (h *MachineHandler) History(c *fiber.Ctx) error {
	out, err := h.allocations.MachineHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de la máquina
// @Tags         machines
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la máquina"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/machines/{id}/report.pdf [get]
func (h *MachineHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.dashboard.MachineReport(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="maquina-`+id+`.pdf"`)
	return c.Send(out)
}
