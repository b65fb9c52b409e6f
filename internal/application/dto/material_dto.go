package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceChangeDTO referencia anterior de un material.
type ReferenceChangeDTO struct {
	OldReference string    `json:"old_reference"`
	ChangedDate  time.Time `json:"changed_date"`
	Comment      string    `json:"comment"`
}

// MaterialChangeDTO entrada del historial de cambios de un material.
type MaterialChangeDTO struct {
	ChangeDate  time.Time `json:"change_date"`
	ChangedBy   string    `json:"changed_by"`
	Description string    `json:"description"`
}

// MaterialResponse salida de un material con su estado de stock derivado.
type MaterialResponse struct {
	ID               string               `json:"id"`
	Reference        string               `json:"reference"`
	Manufacturer     string               `json:"manufacturer"`
	Description      string               `json:"description"`
	CategoryID       string               `json:"category_id,omitempty"`
	CategoryName     string               `json:"category_name,omitempty"`
	LocationID       string               `json:"location_id,omitempty"`
	LocationName     string               `json:"location_name,omitempty"`
	SupplierID       string               `json:"supplier_id,omitempty"`
	SupplierName     string               `json:"supplier_name,omitempty"`
	CurrentStock     int                  `json:"current_stock"`
	MinimumStock     int                  `json:"minimum_stock"`
	OrderLot         int                  `json:"order_lot"`
	Critical         bool                 `json:"critical"`
	Consumable       bool                 `json:"consumable"`
	Price            decimal.Decimal      `json:"price"`
	MachineIDs       []string             `json:"machine_ids"`
	Comment          string               `json:"comment"`
	Photo            string               `json:"photo"`
	Status           string               `json:"status"`
	MatchType        string               `json:"match_type,omitempty"`
	ReferenceHistory []ReferenceChangeDTO `json:"reference_history"`
	MaterialHistory  []MaterialChangeDTO  `json:"material_history"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// MaterialDetailResponse material con sus asignaciones a máquinas.
type MaterialDetailResponse struct {
	MaterialResponse
	Allocations []AllocationResponse `json:"allocations"`
}

// MaterialListResponse página de materiales (GET /api/materials).
type MaterialListResponse struct {
	Data       []MaterialResponse `json:"data"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
	MatchType  string             `json:"match_type,omitempty"` // live | history
}

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Reference    string          `json:"reference"`
	Manufacturer string          `json:"manufacturer"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id"`
	LocationID   string          `json:"location_id"`
	SupplierID   string          `json:"supplier_id"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	OrderLot     int             `json:"order_lot"`
	Critical     bool            `json:"critical"`
	Consumable   bool            `json:"consumable"`
	Price        decimal.Decimal `json:"price"`
	MachineIDs   []string        `json:"machine_ids"`
	Comment      string          `json:"comment"`
	Photo        string          `json:"photo"`
	CreatedBy    string          `json:"created_by"`
}

// UpdateMaterialRequest entrada para actualizar un material; los campos nil no cambian.
// Un cambio de Reference agrega una entrada al historial de referencias con ReferenceComment.
type UpdateMaterialRequest struct {
	Reference        *string          `json:"reference"`
	ReferenceComment string           `json:"reference_comment"`
	Manufacturer     *string          `json:"manufacturer"`
	Description      *string          `json:"description"`
	CategoryID       *string          `json:"category_id"`
	LocationID       *string          `json:"location_id"`
	SupplierID       *string          `json:"supplier_id"`
	CurrentStock     *int             `json:"current_stock"`
	MinimumStock     *int             `json:"minimum_stock"`
	OrderLot         *int             `json:"order_lot"`
	Critical         *bool            `json:"critical"`
	Consumable       *bool            `json:"consumable"`
	Price            *decimal.Decimal `json:"price"`
	MachineIDs       []string         `json:"machine_ids"`
	Comment          *string          `json:"comment"`
	Photo            *string          `json:"photo"`
	ChangedBy        string           `json:"changed_by"`
}

// FilterOptionDTO valor disponible para un filtro de la lista de materiales.
type FilterOptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
