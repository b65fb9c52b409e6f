package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-maquinas/internal/application/usecase"
)

// ReferenceHandler catálogos de solo lectura.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// Categories GET /api/categories
func (h *ReferenceHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Locations GET /api/locations
func (h *ReferenceHandler) Locations(c *fiber.Ctx) error {
	out, err := h.uc.ListLocations(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Suppliers GET /api/suppliers
func (h *ReferenceHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
