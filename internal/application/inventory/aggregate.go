package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	stock "github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

// AllocationLine una asignación unida con los datos vivos de su material.
type AllocationLine struct {
	AllocationID string
	MaterialID   string
	// Reference y Description salen de la copia guardada en la asignación (solo visualización).
	Reference   string
	Description string
	// Datos vivos del material. Si el material no está en el snapshot quedan en cero
	// y MaterialKnown es false.
	MaterialKnown  bool
	CategoryID     string
	CurrentStock   int
	MinimumStock   int
	Critical       bool
	Status         stock.StockStatus
	AllocatedStock int
	UpdatedAt      time.Time
}

// MachineSummary vista por máquina del libro de asignaciones.
type MachineSummary struct {
	MachineID    string
	Name         string
	Description  string
	Status       string
	MachineKnown bool // false si la máquina no está en el snapshot (se usan las copias de la asignación)

	TotalMaterials      int
	CriticalMaterials   int // crítico o sin stock
	LowStockMaterials   int
	TotalAllocatedStock int
	LastUpdated         time.Time
	Lines               []AllocationLine
}

// GlobalSummary totales del dashboard.
type GlobalSummary struct {
	TotalMachines       int
	TotalAllocations    int
	CriticalMaterials   int
	LowStockMaterials   int
	TotalAllocatedStock int
}

// AggregateResult resultado de Aggregate.
type AggregateResult struct {
	PerMachine []MachineSummary
	Global     GlobalSummary
}

// AggregateSnapshot aplica Aggregate sobre las colecciones de un snapshot.
func (e *Engine) AggregateSnapshot(snap *repository.Snapshot) AggregateResult {
	if snap == nil {
		return e.Aggregate(nil, nil, nil)
	}
	return e.Aggregate(snap.Allocations, snap.Materials, snap.Machines)
}

// Aggregate agrupa las asignaciones por máquina y calcula los contadores.
//
//  1. Las asignaciones sin máquina se descartan.
//  2. Cada asignación se une con su material vivo (por id); si falta, la línea
//     usa stock 0, mínimo 0 y crítico false sin fallar la agregación.
//  3. Crítico = estado crítico o sin stock; bajo = estado low_stock. Cada línea
//     cuenta en un solo grupo.
//
// Las entradas no se modifican.
func (e *Engine) Aggregate(allocations []entity.Allocation, materials []entity.Material, machines []entity.Machine) AggregateResult {
	materialByID := make(map[string]*entity.Material, len(materials))
	for i := range materials {
		materialByID[materials[i].ID] = &materials[i]
	}
	machineByID := make(map[string]*entity.Machine, len(machines))
	for i := range machines {
		machineByID[machines[i].ID] = &machines[i]
	}

	groups := make(map[string]*MachineSummary)
	order := make([]string, 0)
	for i := range allocations {
		a := &allocations[i]
		if a.MachineID == "" {
			continue
		}
		g, ok := groups[a.MachineID]
		if !ok {
			g = newMachineSummary(a, machineByID[a.MachineID])
			groups[a.MachineID] = g
			order = append(order, a.MachineID)
		}

		line := joinLine(a, materialByID[a.MaterialID])
		g.Lines = append(g.Lines, line)
		g.TotalMaterials++
		g.TotalAllocatedStock += a.AllocatedStock
		switch {
		case line.Status.IsCritical():
			g.CriticalMaterials++
		case line.Status == stock.StatusLowStock:
			g.LowStockMaterials++
		}
		if a.UpdatedAt.After(g.LastUpdated) {
			g.LastUpdated = a.UpdatedAt
		}
	}

	col := e.collator()
	result := AggregateResult{PerMachine: make([]MachineSummary, 0, len(groups))}
	for _, id := range order {
		g := groups[id]
		sort.SliceStable(g.Lines, func(i, j int) bool {
			if c := col.CompareString(g.Lines[i].Reference, g.Lines[j].Reference); c != 0 {
				return c < 0
			}
			return g.Lines[i].AllocationID < g.Lines[j].AllocationID
		})
		result.PerMachine = append(result.PerMachine, *g)

		result.Global.TotalAllocations += g.TotalMaterials
		result.Global.CriticalMaterials += g.CriticalMaterials
		result.Global.LowStockMaterials += g.LowStockMaterials
		result.Global.TotalAllocatedStock += g.TotalAllocatedStock
	}
	result.Global.TotalMachines = len(result.PerMachine)

	sort.SliceStable(result.PerMachine, func(i, j int) bool {
		a, b := result.PerMachine[i], result.PerMachine[j]
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.MachineID < b.MachineID
	})
	return result
}

func newMachineSummary(a *entity.Allocation, m *entity.Machine) *MachineSummary {
	if m != nil {
		return &MachineSummary{
			MachineID:    a.MachineID,
			Name:         m.Name,
			Description:  m.Description,
			Status:       m.Status,
			MachineKnown: true,
		}
	}
	return &MachineSummary{
		MachineID:   a.MachineID,
		Name:        a.Machine.Name,
		Description: a.Machine.Description,
		Status:      a.Machine.Status,
	}
}

func joinLine(a *entity.Allocation, m *entity.Material) AllocationLine {
	line := AllocationLine{
		AllocationID:   a.ID,
		MaterialID:     a.MaterialID,
		Reference:      a.Material.Reference,
		Description:    a.Material.Description,
		AllocatedStock: a.AllocatedStock,
		UpdatedAt:      a.UpdatedAt,
	}
	if m != nil {
		line.MaterialKnown = true
		line.CategoryID = m.CategoryID
		line.CurrentStock = m.CurrentStock
		line.MinimumStock = m.MinimumStock
		line.Critical = m.Critical
		if line.Reference == "" {
			line.Reference = m.Reference
		}
		if line.Description == "" {
			line.Description = m.Description
		}
	}
	line.Status = stock.Classify(line.CurrentStock, line.MinimumStock, line.Critical)
	return line
}

// MachineMaterialHistory historial de stock de un material asignado a una máquina.
type MachineMaterialHistory struct {
	Line    AllocationLine
	History []entity.StockChange
}

// MachineHistory devuelve, por cada asignación de la máquina, la línea unida y su
// historial de stock. found es false si la máquina no existe en el snapshot y
// tampoco tiene asignaciones.
func (e *Engine) MachineHistory(snap *repository.Snapshot, machineID string) (summary MachineSummary, items []MachineMaterialHistory, found bool) {
	if snap == nil || machineID == "" {
		return MachineSummary{}, nil, false
	}
	var own []entity.Allocation
	byID := make(map[string]entity.Allocation)
	for _, a := range snap.Allocations {
		if a.MachineID == machineID {
			own = append(own, a)
			byID[a.ID] = a
		}
	}
	var machine *entity.Machine
	for i := range snap.Machines {
		if snap.Machines[i].ID == machineID {
			machine = &snap.Machines[i]
			break
		}
	}
	if machine == nil && len(own) == 0 {
		return MachineSummary{}, nil, false
	}

	agg := e.Aggregate(own, snap.Materials, snap.Machines)
	if len(agg.PerMachine) == 0 {
		// máquina existente sin asignaciones
		return MachineSummary{
			MachineID:    machine.ID,
			Name:         machine.Name,
			Description:  machine.Description,
			Status:       machine.Status,
			MachineKnown: true,
		}, []MachineMaterialHistory{}, true
	}
	summary = agg.PerMachine[0]
	items = make([]MachineMaterialHistory, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		items = append(items, MachineMaterialHistory{
			Line:    line,
			History: append([]entity.StockChange(nil), byID[line.AllocationID].History...),
		})
	}
	return summary, items, true
}
