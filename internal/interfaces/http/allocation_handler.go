package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
)

// AllocationHandler maneja las peticiones HTTP del libro de asignaciones.
type AllocationHandler struct {
	uc *inventory.AllocationUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *inventory.AllocationUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         allocations
// @Produce      json
// @Success      200  {object}  dto.AllocationListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/allocations [get]
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener asignación por ID
// @Tags         allocations
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allocations/{id} [get]
func (h *AllocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Asignar material a una máquina
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAllocationRequest  true  "Material, máquina y stock asignado"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations [post]
func (h *AllocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.MaterialID == "" || in.MachineID == "" {
		return validation(c, "material_id y machine_id son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar stock asignado
// @Description  Agrega una entrada al historial de stock. Sin comentario se usa "Updated stock from X to Y".
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la asignación"
// @Param        body  body  dto.UpdateAllocationRequest  true  "Nuevo stock y comentario opcional"
// @Success      200   {object}  dto.UpdateAllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/allocations/{id} [put]
func (h *AllocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStock(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una asignación
// @Tags         allocations
// @Param        id   path  string  true  "ID de la asignación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allocations/{id} [delete]
func (h *AllocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
