package usecase

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

// ReferenceUseCase lecturas de catálogos: máquinas, categorías, ubicaciones y proveedores.
type ReferenceUseCase struct {
	machines repository.MachineRepository
	refs     repository.ReferenceRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(machines repository.MachineRepository, refs repository.ReferenceRepository) *ReferenceUseCase {
	return &ReferenceUseCase{machines: machines, refs: refs}
}

// ListMachines lista las máquinas.
func (uc *ReferenceUseCase) ListMachines(ctx context.Context) ([]dto.MachineResponse, error) {
	list, err := uc.machines.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.ToMachineResponse(&list[i]))
	}
	return out, nil
}

// ListCategories lista las categorías.
func (uc *ReferenceUseCase) ListCategories(ctx context.Context) ([]dto.NamedResponse, error) {
	list, err := uc.refs.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NamedResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// ListLocations lista las ubicaciones.
func (uc *ReferenceUseCase) ListLocations(ctx context.Context) ([]dto.NamedResponse, error) {
	list, err := uc.refs.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.NamedResponse{ID: l.ID, Name: l.Name})
	}
	return out, nil
}

// ListSuppliers lista los proveedores.
func (uc *ReferenceUseCase) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.refs.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SupplierResponse{ID: s.ID, Name: s.Name, Contact: s.Contact, Email: s.Email, Phone: s.Phone})
	}
	return out, nil
}
