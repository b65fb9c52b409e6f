package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// UpdateState estado de una solicitud de actualización de stock asignado.
//
//	idle → pending → applied
//	              └→ failed
type UpdateState string

const (
	UpdateIdle    UpdateState = "idle"
	UpdatePending UpdateState = "pending"
	UpdateApplied UpdateState = "applied"
	UpdateFailed  UpdateState = "failed"
)

// StockUpdate solicitud de cambio del stock asignado a una máquina.
type StockUpdate struct {
	AllocationID string
	NewStock     int
	Comment      string // opcional; si está vacío se genera uno automático
}

// Validate rechaza la solicitud antes de cualquier transición de estado.
func (u StockUpdate) Validate() error {
	if u.AllocationID == "" {
		return domain.ErrInvalidInput
	}
	if u.NewStock < 0 {
		return domain.ErrInvalidStock
	}
	return nil
}

// DefaultStockComment comentario generado cuando la solicitud no trae uno.
func DefaultStockComment(previousStock, newStock int) string {
	return fmt.Sprintf("Updated stock from %d to %d", previousStock, newStock)
}

// ApplyStockUpdate devuelve una copia de la asignación con exactamente una entrada
// nueva en el historial. previousStock se toma de la asignación almacenada, nunca
// del cliente. La asignación original no se modifica.
func ApplyStockUpdate(current entity.Allocation, u StockUpdate, now time.Time) (entity.Allocation, entity.StockChange, error) {
	if err := u.Validate(); err != nil {
		return current, entity.StockChange{}, err
	}
	if current.ID != u.AllocationID {
		return current, entity.StockChange{}, domain.ErrConflict
	}
	comment := u.Comment
	if comment == "" {
		comment = DefaultStockComment(current.AllocatedStock, u.NewStock)
	}
	entry := entity.StockChange{
		Date:          now,
		PreviousStock: current.AllocatedStock,
		NewStock:      u.NewStock,
		Comment:       comment,
	}
	next := current.Clone()
	next.History = append(next.History, entry)
	next.AllocatedStock = u.NewStock
	next.UpdatedAt = now
	return next, entry, nil
}

// NewAllocation construye una asignación nueva copiando los datos de visualización
// del material y la máquina. No agrega historial: la primera actualización
// tomará allocatedStock como stock previo.
func NewAllocation(id string, material *entity.Material, machine *entity.Machine, allocatedStock int, now time.Time) (entity.Allocation, error) {
	if material == nil || machine == nil {
		return entity.Allocation{}, domain.ErrNotFound
	}
	if allocatedStock < 0 {
		return entity.Allocation{}, domain.ErrInvalidStock
	}
	return entity.Allocation{
		ID:         id,
		MaterialID: material.ID,
		Material: entity.MaterialSnapshot{
			Reference:   material.Reference,
			Description: material.Description,
		},
		MachineID: machine.ID,
		Machine: entity.MachineSnapshot{
			Name:        machine.Name,
			Description: machine.Description,
			Status:      machine.Status,
		},
		AllocatedStock: allocatedStock,
		History:        []entity.StockChange{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// HistoryConsistent verifica la cadena del historial: cada entrada parte del
// NewStock de la anterior, la última coincide con AllocatedStock y UpdatedAt
// corresponde a la fecha de la última entrada.
func HistoryConsistent(a entity.Allocation) bool {
	h := a.History
	if len(h) == 0 {
		return true
	}
	for i := 1; i < len(h); i++ {
		if h[i-1].NewStock != h[i].PreviousStock {
			return false
		}
	}
	last := h[len(h)-1]
	return last.NewStock == a.AllocatedStock && last.Date.Equal(a.UpdatedAt)
}
