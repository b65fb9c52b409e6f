package repository

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// AllocationRepository define el puerto de persistencia para asignaciones material↔máquina.
type AllocationRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe una asignación para el mismo par.
	Create(ctx context.Context, allocation *entity.Allocation) error
	GetByID(ctx context.Context, id string) (*entity.Allocation, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Allocation, error)
	// AppendStockChange guarda AllocatedStock/UpdatedAt y agrega la entrada al historial.
	AppendStockChange(ctx context.Context, allocation *entity.Allocation, change entity.StockChange) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Allocation, error)
	ListByMachine(ctx context.Context, machineID string) ([]entity.Allocation, error)
	ListByMaterial(ctx context.Context, materialID string) ([]entity.Allocation, error)
}
