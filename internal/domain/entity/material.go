package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un material del inventario con su stock central.
// CategoryID, LocationID y SupplierID vacíos equivalen a "sin asignar".
type Material struct {
	ID           string
	Reference    string // referencia vigente (número de parte); sus valores anteriores viven en ReferenceHistory
	Manufacturer string
	Description  string
	CategoryID   string
	LocationID   string
	SupplierID   string
	CurrentStock int
	MinimumStock int
	OrderLot     int
	Critical     bool
	Consumable   bool
	Price        decimal.Decimal
	MachineIDs   []string // máquinas en las que el material PUEDE usarse (no es una asignación)
	Comment      string
	Photo        string
	// Historiales de auditoría: solo se agregan entradas al final.
	ReferenceHistory []ReferenceChange
	MaterialHistory  []MaterialChange
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReferenceChange registra una referencia que el material dejó de usar.
type ReferenceChange struct {
	OldReference string
	ChangedDate  time.Time
	Comment      string
}

// MaterialChange entrada del historial de cambios de un material.
type MaterialChange struct {
	ChangeDate  time.Time
	ChangedBy   string
	Description string
}

// UsableIn indica si el material puede usarse en la máquina indicada.
func (m *Material) UsableIn(machineID string) bool {
	for _, id := range m.MachineIDs {
		if id == machineID {
			return true
		}
	}
	return false
}

// Clone devuelve una copia profunda del material.
func (m Material) Clone() Material {
	out := m
	out.MachineIDs = append([]string(nil), m.MachineIDs...)
	out.ReferenceHistory = append([]ReferenceChange(nil), m.ReferenceHistory...)
	out.MaterialHistory = append([]MaterialChange(nil), m.MaterialHistory...)
	return out
}
