package dto

import "time"

// AllocationLineDTO asignación unida con el stock vivo de su material.
type AllocationLineDTO struct {
	AllocationID   string    `json:"allocation_id"`
	MaterialID     string    `json:"material_id"`
	Reference      string    `json:"reference"`
	Description    string    `json:"description"`
	MaterialKnown  bool      `json:"material_known"`
	CategoryID     string    `json:"category_id,omitempty"`
	CurrentStock   int       `json:"current_stock"`
	MinimumStock   int       `json:"minimum_stock"`
	Critical       bool      `json:"critical"`
	Status         string    `json:"status"`
	AllocatedStock int       `json:"allocated_stock"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MachineSummaryDTO resumen por máquina del dashboard.
type MachineSummaryDTO struct {
	MachineID           string              `json:"machine_id"`
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	Status              string              `json:"status"`
	MachineKnown        bool                `json:"machine_known"`
	TotalMaterials      int                 `json:"total_materials"`
	CriticalMaterials   int                 `json:"critical_materials"` // crítico o sin stock
	LowStockMaterials   int                 `json:"low_stock_materials"`
	TotalAllocatedStock int                 `json:"total_allocated_stock"`
	LastUpdated         time.Time           `json:"last_updated"`
	Lines               []AllocationLineDTO `json:"lines,omitempty"`
}

// GlobalSummaryDTO totales globales.
type GlobalSummaryDTO struct {
	TotalMachines       int `json:"total_machines"`
	TotalAllocations    int `json:"total_allocations"`
	CriticalMaterials   int `json:"critical_materials"`
	LowStockMaterials   int `json:"low_stock_materials"`
	TotalAllocatedStock int `json:"total_allocated_stock"`
}

// MachineDashboardDTO respuesta de GET /api/dashboard/machines.
type MachineDashboardDTO struct {
	Machines   []MachineSummaryDTO `json:"machines"`
	Global     GlobalSummaryDTO    `json:"global"`
	SnapshotAt time.Time           `json:"snapshot_at"`
}

// MachineMaterialHistoryDTO material asignado a una máquina con su historial de stock.
type MachineMaterialHistoryDTO struct {
	Material AllocationLineDTO `json:"material"`
	History  []StockChangeDTO  `json:"history"`
}

// MachineHistoryResponse respuesta de GET /api/machines/:id/history.
type MachineHistoryResponse struct {
	Machine MachineSummaryDTO           `json:"machine"`
	Items   []MachineMaterialHistoryDTO `json:"items"`
}
