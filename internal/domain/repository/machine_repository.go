package repository

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// MachineRepository acceso de solo lectura a las máquinas.
type MachineRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Machine, error)
	List(ctx context.Context) ([]entity.Machine, error)
}
