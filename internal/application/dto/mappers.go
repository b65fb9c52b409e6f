package dto

import (
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
)

// ToAllocationResponse convierte una asignación en su DTO.
func ToAllocationResponse(a *entity.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:                  a.ID,
		MaterialID:          a.MaterialID,
		MaterialReference:   a.Material.Reference,
		MaterialDescription: a.Material.Description,
		MachineID:           a.MachineID,
		MachineName:         a.Machine.Name,
		MachineDescription:  a.Machine.Description,
		MachineStatus:       a.Machine.Status,
		AllocatedStock:      a.AllocatedStock,
		History:             ToStockChanges(a.History),
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// ToStockChanges convierte un historial de stock; nunca devuelve nil.
func ToStockChanges(h []entity.StockChange) []StockChangeDTO {
	out := make([]StockChangeDTO, 0, len(h))
	for _, c := range h {
		out = append(out, ToStockChange(c))
	}
	return out
}

// ToStockChange convierte una entrada del historial de stock.
func ToStockChange(c entity.StockChange) StockChangeDTO {
	return StockChangeDTO{
		Date:          c.Date,
		PreviousStock: c.PreviousStock,
		NewStock:      c.NewStock,
		Comment:       c.Comment,
	}
}

// ToMaterialResponse convierte un material; el estado se calcula con el clasificador.
func ToMaterialResponse(m *entity.Material) MaterialResponse {
	machineIDs := append([]string{}, m.MachineIDs...)
	refs := make([]ReferenceChangeDTO, 0, len(m.ReferenceHistory))
	for _, r := range m.ReferenceHistory {
		refs = append(refs, ReferenceChangeDTO{OldReference: r.OldReference, ChangedDate: r.ChangedDate, Comment: r.Comment})
	}
	changes := make([]MaterialChangeDTO, 0, len(m.MaterialHistory))
	for _, c := range m.MaterialHistory {
		changes = append(changes, MaterialChangeDTO{ChangeDate: c.ChangeDate, ChangedBy: c.ChangedBy, Description: c.Description})
	}
	return MaterialResponse{
		ID:               m.ID,
		Reference:        m.Reference,
		Manufacturer:     m.Manufacturer,
		Description:      m.Description,
		CategoryID:       m.CategoryID,
		LocationID:       m.LocationID,
		SupplierID:       m.SupplierID,
		CurrentStock:     m.CurrentStock,
		MinimumStock:     m.MinimumStock,
		OrderLot:         m.OrderLot,
		Critical:         m.Critical,
		Consumable:       m.Consumable,
		Price:            m.Price,
		MachineIDs:       machineIDs,
		Comment:          m.Comment,
		Photo:            m.Photo,
		Status:           string(inventory.ClassifyMaterial(m)),
		ReferenceHistory: refs,
		MaterialHistory:  changes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToMachineResponse convierte una máquina.
func ToMachineResponse(m *entity.Machine) MachineResponse {
	return MachineResponse{ID: m.ID, Name: m.Name, Description: m.Description, Status: m.Status}
}
