package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// Snapshot colecciones leídas juntas en un mismo instante. Agregación y búsqueda
// trabajan siempre sobre un único Snapshot para no cruzar datos de momentos distintos.
type Snapshot struct {
	Materials   []entity.Material
	Machines    []entity.Machine
	Allocations []entity.Allocation
	Categories  []entity.Category
	Locations   []entity.Location
	Suppliers   []entity.Supplier
	TakenAt     time.Time
}

// SnapshotReader carga un Snapshot consistente (una transacción de solo lectura
// o un único bloqueo de lectura).
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}
