package memory

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var (
	_ repository.MachineRepository   = (*MachineRepo)(nil)
	_ repository.ReferenceRepository = (*ReferenceRepo)(nil)
)

// MachineRepo máquinas en memoria (solo lectura).
type MachineRepo struct {
	store *Store
}

func (r *MachineRepo) GetByID(_ context.Context, id string) (*entity.Machine, error) {
	var out *entity.Machine
	err := r.store.read(nil, func(st *state) error {
		for _, m := range st.machines {
			if m.ID == id {
				c := m
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *MachineRepo) List(_ context.Context) ([]entity.Machine, error) {
	var out []entity.Machine
	err := r.store.read(nil, func(st *state) error {
		out = append([]entity.Machine{}, st.machines...)
		return nil
	})
	return out, err
}

// ReferenceRepo catálogos en memoria (solo lectura).
type ReferenceRepo struct {
	store *Store
}

func (r *ReferenceRepo) ListCategories(_ context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.store.read(nil, func(st *state) error {
		out = append([]entity.Category{}, st.categories...)
		return nil
	})
	return out, err
}

func (r *ReferenceRepo) ListLocations(_ context.Context) ([]entity.Location, error) {
	var out []entity.Location
	err := r.store.read(nil, func(st *state) error {
		out = append([]entity.Location{}, st.locations...)
		return nil
	})
	return out, err
}

func (r *ReferenceRepo) ListSuppliers(_ context.Context) ([]entity.Supplier, error) {
	var out []entity.Supplier
	err := r.store.read(nil, func(st *state) error {
		out = append([]entity.Supplier{}, st.suppliers...)
		return nil
	})
	return out, err
}
