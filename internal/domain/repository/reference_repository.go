package repository

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// ReferenceRepository datos de referencia de solo lectura (categorías, ubicaciones, proveedores).
type ReferenceRepository interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListLocations(ctx context.Context) ([]entity.Location, error)
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
}
