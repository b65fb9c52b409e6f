package repository

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para el libro de materiales (DIP).
// GetByID devuelve (nil, nil) si el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// GetForUpdate bloquea el material hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	// Update persiste los campos del material; no toca los historiales.
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Material, error)

	AppendReferenceChange(ctx context.Context, materialID string, change entity.ReferenceChange) error
	// DeleteReferenceChange elimina la entrada en la posición index (0 = más antigua).
	DeleteReferenceChange(ctx context.Context, materialID string, index int) error
	AppendMaterialChange(ctx context.Context, materialID string, change entity.MaterialChange) error
}
