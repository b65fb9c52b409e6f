package inventory

import (
	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
)

// ToAllocationLineDTO convierte una línea agregada.
func ToAllocationLineDTO(l AllocationLine) dto.AllocationLineDTO {
	return dto.AllocationLineDTO{
		AllocationID:   l.AllocationID,
		MaterialID:     l.MaterialID,
		Reference:      l.Reference,
		Description:    l.Description,
		MaterialKnown:  l.MaterialKnown,
		CategoryID:     l.CategoryID,
		CurrentStock:   l.CurrentStock,
		MinimumStock:   l.MinimumStock,
		Critical:       l.Critical,
		Status:         string(l.Status),
		AllocatedStock: l.AllocatedStock,
		UpdatedAt:      l.UpdatedAt,
	}
}

// ToMachineSummaryDTO convierte el resumen de una máquina; withLines incluye sus líneas.
func ToMachineSummaryDTO(s MachineSummary, withLines bool) dto.MachineSummaryDTO {
	out := dto.MachineSummaryDTO{
		MachineID:           s.MachineID,
		Name:                s.Name,
		Description:         s.Description,
		Status:              s.Status,
		MachineKnown:        s.MachineKnown,
		TotalMaterials:      s.TotalMaterials,
		CriticalMaterials:   s.CriticalMaterials,
		LowStockMaterials:   s.LowStockMaterials,
		TotalAllocatedStock: s.TotalAllocatedStock,
		LastUpdated:         s.LastUpdated,
	}
	if withLines {
		out.Lines = make([]dto.AllocationLineDTO, 0, len(s.Lines))
		for _, l := range s.Lines {
			out.Lines = append(out.Lines, ToAllocationLineDTO(l))
		}
	}
	return out
}

// ToGlobalSummaryDTO convierte los totales globales.
func ToGlobalSummaryDTO(g GlobalSummary) dto.GlobalSummaryDTO {
	return dto.GlobalSummaryDTO{
		TotalMachines:       g.TotalMachines,
		TotalAllocations:    g.TotalAllocations,
		CriticalMaterials:   g.CriticalMaterials,
		LowStockMaterials:   g.LowStockMaterials,
		TotalAllocatedStock: g.TotalAllocatedStock,
	}
}

// ToMaterialListResponse convierte una página del resultado de Query.
func ToMaterialListResponse(r QueryResult) *dto.MaterialListResponse {
	out := &dto.MaterialListResponse{
		Data:       make([]dto.MaterialResponse, 0, len(r.Data)),
		Page:       r.Page,
		Limit:      r.Limit,
		Total:      r.Total,
		TotalPages: r.TotalPages,
		MatchType:  string(r.MatchType),
	}
	for i := range r.Data {
		out.Data = append(out.Data, toMaterialRowDTO(&r.Data[i]))
	}
	return out
}

func toMaterialRowDTO(row *MaterialRow) dto.MaterialResponse {
	m := dto.ToMaterialResponse(&row.Material)
	m.Status = string(row.Status)
	m.MatchType = string(row.MatchType)
	m.CategoryName = row.CategoryName
	m.LocationName = row.LocationName
	m.SupplierName = row.SupplierName
	return m
}

func toFilterOptionDTOs(opts []FilterOption) []dto.FilterOptionDTO {
	out := make([]dto.FilterOptionDTO, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.FilterOptionDTO{Value: o.Value, Label: o.Label, Count: o.Count})
	}
	return out
}

// ToMachineHistoryResponse convierte el historial por máquina.
func ToMachineHistoryResponse(summary MachineSummary, items []MachineMaterialHistory) *dto.MachineHistoryResponse {
	out := &dto.MachineHistoryResponse{
		Machine: ToMachineSummaryDTO(summary, false),
		Items:   make([]dto.MachineMaterialHistoryDTO, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.MachineMaterialHistoryDTO{
			Material: ToAllocationLineDTO(it.Line),
			History:  dto.ToStockChanges(it.History),
		})
	}
	return out
}
