package entity

import "time"

// Allocation asigna una porción del stock de un material a una máquina.
// Existe como máximo una Allocation por par (material, máquina).
//
// Material y Machine son copias tomadas al crear la asignación y sirven solo
// para mostrar datos; el estado del stock se lee siempre del Material vivo.
type Allocation struct {
	ID             string
	MaterialID     string
	Material       MaterialSnapshot
	MachineID      string
	Machine        MachineSnapshot
	AllocatedStock int
	History        []StockChange
	CreatedAt      time.Time
	UpdatedAt      time.Time // fecha de la última entrada de History (CreatedAt si no hay)
}

// MaterialSnapshot copia de visualización del material al momento de asignar.
type MaterialSnapshot struct {
	Reference   string
	Description string
}

// MachineSnapshot copia de visualización de la máquina al momento de asignar.
type MachineSnapshot struct {
	Name        string
	Description string
	Status      string
}

// StockChange entrada inmutable del historial de stock de una asignación.
type StockChange struct {
	Date          time.Time
	PreviousStock int
	NewStock      int
	Comment       string
}

// Clone devuelve una copia profunda (el historial no comparte el arreglo subyacente).
func (a Allocation) Clone() Allocation {
	out := a
	out.History = append([]StockChange(nil), a.History...)
	return out
}
