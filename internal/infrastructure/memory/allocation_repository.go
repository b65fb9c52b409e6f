package memory

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo asignaciones en memoria.
type AllocationRepo struct {
	store *Store
	tx    *state
}

// Create agrega la asignación. domain.ErrDuplicate si el par material/máquina ya existe.
func (r *AllocationRepo) Create(ctx context.Context, allocation *entity.Allocation) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		if _, ok := st.allocations[allocation.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, a := range st.allocations {
			if a.MaterialID == allocation.MaterialID && a.MachineID == allocation.MachineID {
				return domain.ErrDuplicate
			}
		}
		st.allocations[allocation.ID] = allocation.Clone()
		st.allocationOrder = append(st.allocationOrder, allocation.ID)
		return nil
	})
}

func (r *AllocationRepo) GetByID(_ context.Context, id string) (*entity.Allocation, error) {
	var out *entity.Allocation
	err := r.store.read(r.tx, func(st *state) error {
		if a, ok := st.allocations[id]; ok {
			c := a.Clone()
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: Run ya tiene el bloqueo de escritura.
func (r *AllocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Allocation, error) {
	return r.GetByID(ctx, id)
}

// AppendStockChange guarda el nuevo stock y agrega change al historial almacenado.
func (r *AllocationRepo) AppendStockChange(ctx context.Context, allocation *entity.Allocation, change entity.StockChange) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		stored, ok := st.allocations[allocation.ID]
		if !ok {
			return domain.ErrNotFound
		}
		stored.History = append(append([]entity.StockChange(nil), stored.History...), change)
		stored.AllocatedStock = allocation.AllocatedStock
		stored.UpdatedAt = allocation.UpdatedAt
		st.allocations[allocation.ID] = stored
		return nil
	})
}

func (r *AllocationRepo) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		if _, ok := st.allocations[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.allocations, id)
		st.allocationOrder = removeID(st.allocationOrder, id)
		return nil
	})
}

func (r *AllocationRepo) List(_ context.Context) ([]entity.Allocation, error) {
	return r.filter(func(*entity.Allocation) bool { return true })
}

func (r *AllocationRepo) ListByMachine(_ context.Context, machineID string) ([]entity.Allocation, error) {
	return r.filter(func(a *entity.Allocation) bool { return a.MachineID == machineID })
}

func (r *AllocationRepo) ListByMaterial(_ context.Context, materialID string) ([]entity.Allocation, error) {
	return r.filter(func(a *entity.Allocation) bool { return a.MaterialID == materialID })
}

func (r *AllocationRepo) filter(keep func(*entity.Allocation) bool) ([]entity.Allocation, error) {
	out := []entity.Allocation{}
	err := r.store.read(r.tx, func(st *state) error {
		for _, id := range st.allocationOrder {
			a := st.allocations[id]
			if keep(&a) {
				out = append(out, a.Clone())
			}
		}
		return nil
	})
	return out, err
}
