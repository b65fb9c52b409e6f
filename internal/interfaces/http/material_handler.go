package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/application/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MaterialHandler maneja la lista de materiales (consultas) y el libro de materiales (escrituras).
type MaterialHandler struct {
	query  *inventory.MaterialQueryUseCase
	ledger *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(query *inventory.MaterialQueryUseCase, ledger *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{query: query, ledger: ledger}
}

// List godoc
// @Summary      Listar materiales
// @Description  Búsqueda por referencia vigente, descripción, fabricante, categoría o referencias anteriores.
// @Tags         materials
// @Produce      json
// @Param        page          query  int     false  "Página (base 1)"  default(1)
// @Param        limit         query  int     false  "Tamaño de página"  default(10)
// @Param        search        query  string  false  "Texto a buscar"
// @Param        sort          query  string  false  "Campo de orden"
// @Param        order         query  string  false  "asc | desc | 1 | -1"
// @Param        stock_status  query  string  false  "in_stock | low_stock | critical | out_of_stock"
// @Success      200  {object}  dto.MaterialListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.query.Query(c.UserContext(), inventory.ParseQueryParams(c.Queries()))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FilterOptions godoc
// @Summary      Valores disponibles de un filtro
// @Tags         materials
// @Produce      json
// @Param        field  path  string  true  "manufacturer | category | location | supplier | machine"
// @Success      200    {array}   dto.FilterOptionDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/materials/filter-options/{field} [get]
func (h *MaterialHandler) FilterOptions(c *fiber.Ctx) error {
	out, err := h.query.FilterOptions(c.UserContext(), c.Params("field"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar la página de materiales a Excel
// @Tags         materials
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/materials/export.xlsx [get]
func (h *MaterialHandler) Export(c *fiber.Ctx) error {
	out, err := h.query.Export(c.UserContext(), inventory.ParseQueryParams(c.Queries()))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="materiales.xlsx"`)
	return c.Send(out)
}

// GetByID godoc
// @Summary      Detalle de material con sus asignaciones
// @Tags         materials
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ledger.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Reference == "" {
		return validation(c, "reference es requerido")
	}
	out, err := h.ledger.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar material
// @Tags         materials
// @Param        id   path  string  true  "ID del material"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveReferenceChange godoc
// @Summary      Eliminar una referencia anterior
// @Tags         materials
// @Produce      json
// @Param        id          path   string  true   "ID del material"
// @Param        index       path   int     true   "Posición en el historial (0 = más antigua)"
// @Param        changed_by  query  string  false  "Usuario que elimina"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/reference-history/{index} [delete]
func (h *MaterialHandler) RemoveReferenceChange(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return validation(c, "index debe ser un entero no negativo")
	}
	out, err := h.ledger.RemoveReferenceChange(c.UserContext(), c.Params("id"), index, c.Query("changed_by"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
