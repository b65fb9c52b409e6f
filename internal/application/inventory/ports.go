package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error no se persiste ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materials repository.MaterialRepository,
		allocations repository.AllocationRepository,
	) error) error
}
