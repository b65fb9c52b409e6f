package dto

import "time"

// CreateAllocationRequest body para POST /api/allocations.
type CreateAllocationRequest struct {
	MaterialID     string `json:"material_id"`
	MachineID      string `json:"machine_id"`
	AllocatedStock *int   `json:"allocated_stock"`
}

// UpdateAllocationRequest body para PUT /api/allocations/:id.
// Comment es opcional; si viene vacío se genera "Updated stock from X to Y".
type UpdateAllocationRequest struct {
	AllocatedStock *int   `json:"allocated_stock"`
	Comment        string `json:"comment"`
}

// StockChangeDTO entrada del historial de stock de una asignación.
type StockChangeDTO struct {
	Date          time.Time `json:"date"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Comment       string    `json:"comment"`
}

// AllocationResponse salida de una asignación. Los campos material_* y machine_*
// son la copia tomada al asignar (solo visualización).
type AllocationResponse struct {
	ID                  string           `json:"id"`
	MaterialID          string           `json:"material_id"`
	MaterialReference   string           `json:"material_reference"`
	MaterialDescription string           `json:"material_description"`
	MachineID           string           `json:"machine_id"`
	MachineName         string           `json:"machine_name"`
	MachineDescription  string           `json:"machine_description"`
	MachineStatus       string           `json:"machine_status"`
	AllocatedStock      int              `json:"allocated_stock"`
	History             []StockChangeDTO `json:"history"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// AllocationListResponse lista de asignaciones.
type AllocationListResponse struct {
	Items []AllocationResponse `json:"items"`
	Total int                  `json:"total"`
}

// UpdateAllocationResponse resultado de la máquina de estados de actualización.
type UpdateAllocationResponse struct {
	State      string             `json:"state"` // applied
	Allocation AllocationResponse `json:"allocation"`
	Entry      StockChangeDTO     `json:"entry"`
}
